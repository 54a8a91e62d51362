// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to configuration file",
	Value:   "config.toml",
}

// authCommand handles session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Session management",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "avatar",
						Usage: "Path to avatar image",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Path to cover image",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:    "whoami",
				Aliases: []string{"status"},
				Usage:   "Show the authenticated user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// historyCommand handles watch-history operations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"hist"},
		Usage:   "Watch history operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recently watched videos",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache instead of the API",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "add",
				Usage: "Record a watch event for a video",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "videoId",
					},
				},
				Action: r.HistoryAdd,
			},
			{
				Name:   "clear",
				Usage:  "Clear the watch history",
				Action: r.HistoryClear,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local cache instead of the API",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its members",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlistId",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Output Markdown",
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "visibility",
						Aliases: []string{"v"},
						Usage:   "public or private",
						Value:   "private",
					},
					&cli.StringFlag{
						Name:  "add-video",
						Usage: "Video ID to add immediately after creation",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlistId",
					},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "add",
				Usage: "Add a video to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlistId",
					},
					&cli.StringArg{
						Name: "videoId",
					},
				},
				Action: r.PlaylistAddVideo,
			},
			{
				Name:  "remove",
				Usage: "Remove a video from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlistId",
					},
					&cli.StringArg{
						Name: "videoId",
					},
				},
				Action: r.PlaylistRemoveVideo,
			},
		},
	}
}

// videoCommand handles engagement toggles
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "video",
		Usage: "Video engagement operations",
		Commands: []*cli.Command{
			{
				Name:  "like",
				Usage: "Toggle like on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "videoId",
					},
				},
				Action: r.VideoLike,
			},
			{
				Name:  "dislike",
				Usage: "Toggle dislike on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "videoId",
					},
				},
				Action: r.VideoDislike,
			},
			{
				Name:  "subscribe",
				Usage: "Toggle subscription to a channel",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "channelId",
					},
				},
				Action: r.VideoSubscribe,
			},
			{
				Name:  "subscriptions",
				Usage: "List subscribed channels",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideoSubscriptions,
			},
		},
	}
}

// apiCommand handles raw API passthrough calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response envelope",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with a JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "JSON request body",
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "delete",
				Usage: "Direct DELETE, prints the response envelope",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.APIDelete,
			},
		},
	}
}

// tuiCommand launches the interactive terminal browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse history and playlists interactively",
		Action: r.TUI,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the local cache database and run migrations",
		Flags:  []cli.Flag{configFlag},
		Action: r.Setup,
	}
}
