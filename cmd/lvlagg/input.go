// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlagg/graph"
)

var (
	errBadRecord = errors.New("malformed record")
	errNoRows    = errors.New("input has no rows")
)

// readCSV reads every record of path. Lines starting with '#' are skipped and
// fields are trimmed.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoRows)
	}

	return records, nil
}

// readGraph builds a directed graph from "src,dst" records.
func readGraph(path string, opts ...graph.GraphOption) (*graph.Graph, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	g := graph.NewGraph(opts...)
	for i, rec := range records {
		if len(rec) != 2 {
			return nil, fmt.Errorf("%s:%d: want src,dst: %w", path, i+1, errBadRecord)
		}
		if err := g.AddEdge(rec[0], rec[1]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
	}

	return g, nil
}

// readTable parses numeric records with the label in the last column. Every
// record must have the same width, at least one feature plus the label.
func readTable(path string) (features [][]float64, labels []float64, err error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	width := len(records[0])
	if width < 2 {
		return nil, nil, fmt.Errorf("%s:1: want features and label: %w", path, errBadRecord)
	}
	for i, rec := range records {
		if len(rec) != width {
			return nil, nil, fmt.Errorf("%s:%d: want %d fields, got %d: %w", path, i+1, width, len(rec), errBadRecord)
		}
		row := make([]float64, width)
		for j, field := range rec {
			if row[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
			}
		}
		features = append(features, row[:width-1])
		labels = append(labels, row[width-1])
	}

	return features, labels, nil
}
