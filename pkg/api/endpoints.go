package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/kit"
)

// Shared request/response types used by both HTTP and MCP transports.

const maxBatchValues = 500

type resolveReq struct {
	Value string
}

type batchReq struct {
	Values []string
}

// resolveResult echoes the input value alongside its resolution.
type resolveResult struct {
	Value string `json:"value"`
	geo.Resolution
}

type batchResponse struct {
	Results []resolveResult `json:"results"`
}

type refdataResponse struct {
	ID        string `json:"id"`
	Version   string `json:"version"`
	Source    string `json:"source"`
	License   string `json:"license"`
	Countries int    `json:"countries"`
	Aliases   int    `json:"aliases"`
}

func resolveEndpoint(store *geo.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		reg := store.Get()
		if reg == nil {
			return nil, fmt.Errorf("reference data not loaded")
		}
		return resolveResult{Value: req.Value, Resolution: reg.Resolve(req.Value)}, nil
	}
}

func resolveBatchEndpoint(store *geo.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Values) == 0 {
			return nil, fmt.Errorf("values array is empty")
		}
		if len(req.Values) > maxBatchValues {
			return nil, fmt.Errorf("too many values (max %d, got %d)", maxBatchValues, len(req.Values))
		}
		reg := store.Get()
		if reg == nil {
			return nil, fmt.Errorf("reference data not loaded")
		}
		results := make([]resolveResult, len(req.Values))
		for i, v := range req.Values {
			results[i] = resolveResult{Value: v, Resolution: reg.Resolve(v)}
		}
		return batchResponse{Results: results}, nil
	}
}

func refdataEndpoint(store *geo.Store) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		reg := store.Get()
		if reg == nil {
			return nil, fmt.Errorf("reference data not loaded")
		}
		m := reg.Manifest()
		return refdataResponse{
			ID:        m.ID,
			Version:   m.Version,
			Source:    m.Source,
			License:   m.License,
			Countries: reg.CountryCount(),
			Aliases:   reg.AliasCount(),
		}, nil
	}
}

// logging records each endpoint call with its transport and duration.
func logging(logger *slog.Logger, name string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			logger.Debug("endpoint",
				"name", name,
				"transport", kit.GetTransport(ctx),
				"request_id", kit.GetRequestID(ctx),
				"duration", time.Since(start),
				"error", err,
			)
			return resp, err
		}
	}
}
