package main

import "github.com/urfave/cli/v3"

// serveCommand starts the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the catalog HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides server.addr",
			},
		},
		Action: r.Serve,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration to the --config path",
				Action: r.ConfigInit,
			},
		},
	}
}

// productsCommand handles product batches and searches
func productsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "products",
		Aliases: []string{"p"},
		Usage:   "Product catalog operations",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Create every product listed in a JSON file",
				ArgsUsage: "<file.json>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.ImportProducts,
			},
			{
				Name:      "delete",
				Usage:     "Delete products by id",
				ArgsUsage: "<id>...",
				Arguments: []cli.Argument{
					&cli.StringArgs{Name: "ids", Min: 1, Max: -1},
				},
				Action: r.DeleteProducts,
			},
			{
				Name:  "search",
				Usage: "List one page of products matching the filters",
				Flags: append([]cli.Flag{
					&cli.FloatFlag{
						Name:  "min-price",
						Usage: "Inclusive lower price bound",
					},
					&cli.FloatFlag{
						Name:  "max-price",
						Usage: "Inclusive upper price bound",
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Accepted categories, repeatable",
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Substring to look for",
					},
					&cli.StringFlag{
						Name:  "text-field",
						Usage: "Field searched by --text (name or description)",
						Value: "name",
					},
				}, pageFlags()...),
				Action: r.SearchProducts,
			},
		},
	}
}

// usersCommand handles user batches and searches
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"u"},
		Usage:   "User account operations",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Create every user listed in a JSON file",
				ArgsUsage: "<file.json>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.ImportUsers,
			},
			{
				Name:      "delete",
				Usage:     "Delete users by id",
				ArgsUsage: "<id>...",
				Arguments: []cli.Argument{
					&cli.StringArgs{Name: "ids", Min: 1, Max: -1},
				},
				Action: r.DeleteUsers,
			},
			{
				Name:  "search",
				Usage: "List one page of users matching the filters",
				Flags: append([]cli.Flag{
					&cli.StringSliceFlag{
						Name:  "role",
						Usage: "Accepted roles, repeatable",
					},
					&cli.StringFlag{
						Name:  "text",
						Usage: "Substring of the username",
					},
				}, pageFlags()...),
				Action: r.SearchUsers,
			},
		},
	}
}

// cacheCommand handles the filtered page cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Filtered page cache operations",
		Commands: []*cli.Command{
			{
				Name:   "flush",
				Usage:  "Drop every cached page of every kind",
				Action: r.CacheFlush,
			},
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "case-sensitive",
			Usage: "Match --text case sensitively",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "Page number, starting at 1",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "per-page",
			Usage: "Items per page",
			Value: 20,
		},
	}
}
