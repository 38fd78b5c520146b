package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geojson/internal/codec"
	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/crs"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config     *config.Config
	DefaultCRS crs.CRS
}

// NewServerContext validates the configuration and builds the default CRS, if any.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	ctx := &ServerContext{Config: cfg}

	if cfg.DefaultCRS != nil {
		def, err := cfg.DefaultCRS.Build()
		if err != nil {
			return nil, err
		}
		ctx.DefaultCRS = def
		log.Info().
			Str("type", string(def.Type())).
			Interface("properties", def.Properties()).
			Msg("Default CRS configured")
	}

	log.Info().
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Bool("minify", cfg.Minify).
		Msg("Server context initialized successfully")

	return ctx, nil
}

// newCodec returns a codec with a fresh per-document CRS table.
func (s *ServerContext) newCodec() *codec.GeometryCodec {
	table := crs.NewTable()
	if s.DefaultCRS == nil {
		return codec.NewGeometryCodec(table)
	}
	return codec.NewGeometryCodec(table, codec.WithDefaultCRS(table.Add(s.DefaultCRS)))
}
