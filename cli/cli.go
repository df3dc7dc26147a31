package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"

	"landsquire.in/estatemap/settings"
)

// Handle parses the command line. Subcommands run and exit; the bare
// invocation falls through so main can start the map browser.
func Handle(config *settings.Settings) {
	shouldExit := true
	cmd := &cli.Command{
		Name:  "estatemap",
		Usage: "Browse properties and upcoming projects on a terminal map",
		Commands: []*cli.Command{
			{
				Name:    "login",
				Aliases: []string{"l"},
				Usage:   "Store the listings API token used by the map browser",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					prompt := promptui.Prompt{
						Label: "API token",
						Mask:  '*',
					}
					token, err := prompt.Run()
					if err != nil {
						return err
					}
					store := settings.NewTokenStore(config.TokenPath)
					if err := store.Save(token); err != nil {
						return err
					}
					fmt.Printf("Token saved to %s\n", config.TokenPath)
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Forget the stored API token",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store := settings.NewTokenStore(config.TokenPath)
					if err := store.Save(""); err != nil {
						return err
					}
					fmt.Println("Token cleared")
					return nil
				},
			},
			{
				Name:  "config",
				Usage: "Print the resolved configuration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("config file:      %s\n", settings.Path())
					fmt.Printf("api base url:     %s\n", config.API.BaseURL)
					fmt.Printf("geocoding url:    %s\n", config.Geocoding.BaseURL)
					fmt.Printf("location lookup:  %v\n", config.Location.Enabled)
					fmt.Printf("default city:     %s\n", config.Map.DefaultCity)
					fmt.Printf("markers per page: %d\n", config.Map.MarkersPerPage)
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			shouldExit = false
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}

	if shouldExit {
		os.Exit(0)
	}
}
