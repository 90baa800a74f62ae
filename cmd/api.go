package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/statsweb/internal/services"
	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the stats API
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	query, err := parseQuery(cmd.StringSlice("query"))
	if err != nil {
		return err
	}

	if token := cmd.String("token"); token != "" {
		ctx = services.WithToken(ctx, token)
	}

	r.logger.Info("GET request", "path", path, "query", query.Encode())

	resp, err := r.api.Get(ctx, path, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(path); err != nil {
		return err
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
	}

	return r.writePlain("%s\n", resp.Body)
}

func parseQuery(pairs []string) (url.Values, error) {
	query := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: query %q is not key=value", shared.ErrInvalidArgument, pair)
		}
		query.Add(key, value)
	}
	return query, nil
}
