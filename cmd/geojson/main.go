package main

import (
	"io"
	"os"

	"github.com/woozymasta/geojson/internal/codec"
	"github.com/woozymasta/geojson/internal/config"
	"github.com/woozymasta/geojson/internal/crs"
	"github.com/woozymasta/geojson/internal/format"
	"github.com/woozymasta/geojson/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string `short:"i" long:"in"         description:"Input file path. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"        description:"Output file path. Writes to stdout if empty"`
	InFormat   string `long:"in-format"            description:"Input format" choice:"auto" choice:"json" choice:"yaml" choice:"wkb-hex" default:"auto"`
	Format     string `short:"f" long:"format"     description:"Output format" choice:"json" choice:"yaml" choice:"wkb-hex" default:"json"`
	Target     string `short:"t" long:"target"     description:"Expected geometry type" choice:"Geometry" choice:"Point" choice:"LineString" choice:"Polygon" default:"Geometry"`
	Minify     bool   `short:"m" long:"minify"     description:"Emit compact JSON"`
	ConfigFile string `short:"c" long:"config"     description:"Config file with default_crs and minify settings"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	c, minify, err := newCodec(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Read Input
	var inputData []byte
	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
	} else {
		inputData, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read input")
	}

	doc, err := format.Read(c, inputData, format.Format(opts.InFormat), codec.Target(opts.Target))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode geometry")
	}

	outputData, err := format.NewWriter(format.Format(opts.Format), minify || opts.Minify).Write(c, doc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode geometry")
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(outputData); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
		return
	}

	if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
		log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output file")
	}
	log.Info().
		Int("geometries", len(doc.Geometries)).
		Int("crs_definitions", c.Table().Len()).
		Str("output", opts.Output).
		Str("format", opts.Format).
		Msg("Successfully converted geometries")
}

func newCodec(path string) (*codec.GeometryCodec, bool, error) {
	table := crs.NewTable()
	if path == "" {
		return codec.NewGeometryCodec(table), false, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, false, err
	}
	if cfg.DefaultCRS == nil {
		return codec.NewGeometryCodec(table), cfg.Minify, nil
	}

	def, err := cfg.DefaultCRS.Build()
	if err != nil {
		return nil, false, err
	}
	return codec.NewGeometryCodec(table, codec.WithDefaultCRS(table.Add(def))), cfg.Minify, nil
}
