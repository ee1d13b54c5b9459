// Package catalog loads the movie list served to quiz players.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/quiz"

	"gopkg.in/yaml.v3"
)

var ErrInvalidMovie = errors.New("invalid movie")

// File is the on-disk layout: {"movies": [...]} in JSON or YAML.
type File struct {
	Movies []entity.Movie `json:"movies" yaml:"movies"`
}

// Load reads a catalog file. Files ending in .yaml or .yml are parsed as
// YAML, anything else as JSON.
func Load(path string) ([]entity.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	movies, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return movies, nil
}

// Parse decodes a catalog in the given format ("json" or "yaml") and
// validates every movie.
func Parse(data []byte, format string) ([]entity.Movie, error) {
	var file File
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	for i := range file.Movies {
		if err := validate(&file.Movies[i]); err != nil {
			return nil, fmt.Errorf("movie %d: %w", i, err)
		}
	}

	if file.Movies == nil {
		file.Movies = []entity.Movie{}
	}
	return file.Movies, nil
}

func validate(m *entity.Movie) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidMovie)
	}
	if !quiz.ValidRating(m.Rating) {
		return fmt.Errorf("%w: %q has rating %v outside %.1f-%.1f", ErrInvalidMovie, m.Title, m.Rating, quiz.MinRating, quiz.MaxRating)
	}
	if m.Reviews == nil {
		m.Reviews = []entity.Review{}
	}
	return nil
}
