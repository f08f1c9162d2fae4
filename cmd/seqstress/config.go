package main

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Config of a stress run, loaded from SEQSTRESS_* environment variables.
type Config struct {
	// Writers is the number of goroutines appending exactly one value each.
	Writers int `default:"1000"`
	// Readers is the number of goroutines sampling the sequence while writers run.
	Readers int `default:"16"`
	// ReadsPerReader is the number of samples taken by each reader.
	ReadsPerReader int `default:"500"`
	// Seed is the length of the sequence before writers start.
	Seed int `default:"10"`
	// MaxParallel bounds the number of goroutines running at once, negative for no bound.
	MaxParallel int `default:"-1"`
	LogLevel    string `default:"info"`
}

func (c *Config) Validate() error {
	var errs []error
	if c.Writers < 0 {
		errs = append(errs, errors.New("writers must not be negative"))
	}
	if c.Readers < 0 || c.ReadsPerReader < 0 {
		errs = append(errs, errors.New("readers and reads per reader must not be negative"))
	}
	if c.Seed < 0 {
		errs = append(errs, errors.New("seed must not be negative"))
	}
	if c.MaxParallel == 0 {
		errs = append(errs, errors.New("max parallel must not be zero"))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
