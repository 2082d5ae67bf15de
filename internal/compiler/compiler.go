// Package compiler drives one schema through parsing, common-field
// distribution, emission and output.
package compiler

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danmuck/msgc/internal/config"
	"github.com/danmuck/msgc/internal/emit"
	"github.com/danmuck/msgc/internal/observability"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/rs/zerolog/log"
)

type Result struct {
	Schema    *schema.Schema
	Artifacts []emit.Artifact
}

// Check parses and distributes the schema read from src.
func Check(src io.Reader, cfg config.Config) (*schema.Schema, error) {
	start := time.Now()
	s, err := schema.Parse(src, cfg.SchemaOptions())
	observability.RecordPhase("parse", time.Since(start), err == nil)
	if err != nil {
		log.Error().Err(err).Str("schema", cfg.Schema).Msg("schema rejected")
		return nil, fmt.Errorf("compile %s: %w", cfg.Schema, err)
	}
	for _, m := range s.Messages {
		observability.RecordMessage(string(m.Class), len(m.FixedFields), len(m.VariableFields))
	}
	log.Info().Str("schema", cfg.Schema).Int("messages", len(s.Messages)).Msg("schema compiled")
	return s, nil
}

// Compile checks the schema and renders both artifacts in memory.
func Compile(src io.Reader, cfg config.Config) (*Result, error) {
	s, err := Check(src, cfg)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	arts, err := emit.Generate(s, cfg.EmitOptions())
	observability.RecordPhase("emit", time.Since(start), err == nil)
	if err != nil {
		log.Error().Err(err).Str("schema", cfg.Schema).Msg("emit failed")
		return nil, fmt.Errorf("compile %s: %w", cfg.Schema, err)
	}
	for _, a := range arts {
		observability.RecordArtifact(a.Name, len(a.Data))
	}
	return &Result{Schema: s, Artifacts: arts}, nil
}

// Run compiles cfg.Schema and writes the artifacts into cfg.OutputDir. No file
// is written unless every phase succeeds.
func Run(cfg config.Config) (res *Result, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	defer func() {
		if cfg.MetricsFile == "" {
			return
		}
		if merr := observability.WriteTextfile(cfg.MetricsFile); merr != nil {
			log.Warn().Err(merr).Str("file", cfg.MetricsFile).Msg("metrics not written")
		}
	}()

	f, err := os.Open(cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()

	res, err = Compile(f, cfg)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	err = emit.WriteArtifacts(cfg.OutputDir, res.Artifacts)
	observability.RecordPhase("write", time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return res, nil
}
