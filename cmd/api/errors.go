package main

import (
	"errors"

	"streetgrade/internal/network"

	"github.com/danielgtaylor/huma/v2"
)

// toHTTPError maps service errors to API errors
func (app *App) toHTTPError(err error, msg string) error {
	switch {
	case errors.Is(err, network.ErrUnknownNetworkType), errors.Is(err, network.ErrInvalidDistance):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, network.ErrPlaceNotFound), errors.Is(err, network.ErrEmptyNetwork):
		return huma.Error404NotFound(err.Error())
	default:
		// Everything else comes from an upstream API
		app.logger.Error(msg, "error", err)
		return huma.Error502BadGateway(msg, err)
	}
}
