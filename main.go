package main

import (
	"time"

	"github.com/pkg/errors"

	"landsquire.in/estatemap/catalog"
	"landsquire.in/estatemap/cli"
	"landsquire.in/estatemap/geocode"
	"landsquire.in/estatemap/httpclient"
	"landsquire.in/estatemap/locate"
	"landsquire.in/estatemap/session"
	"landsquire.in/estatemap/settings"
	"landsquire.in/estatemap/utils"
)

func main() {
	config, err := settings.Load(settings.Path())
	utils.Check(errors.Wrap(err, "could not load configuration"))
	config.SetLogLevel()

	cli.Handle(config)

	tokens := settings.NewTokenStore(config.TokenPath)
	httpClient := httpclient.New(config.API.UserAgent, 30*time.Second)

	ctrl := session.New(session.Deps{
		Catalog:  catalog.NewClient(httpClient, config.API.BaseURL, tokens),
		Geocoder: geocode.NewClient(httpClient, config.Geocoding.BaseURL, config.Geocoding.APIKey),
		Locator:  locate.NewClient(httpClient, config.Location.Endpoint, config.Location.Enabled),
		Tokens:   tokens,
	}, session.Options{
		DefaultCity:    config.Map.DefaultCity,
		MarkersPerPage: config.Map.MarkersPerPage,
	})

	cli.Browse(ctrl)
}
