package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/katalvlaran/lvlagg/config"
	"github.com/katalvlaran/lvlagg/round"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, mutate func(*config.Config)) *app {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Partitions = 3
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	return &app{
		cfg:     cfg,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		runner:  round.NewRunner(round.WithTopology(round.Tree)),
		counter: discard.NewCounter(),
		latency: discard.NewHistogram(),
	}
}

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestReadGraph(t *testing.T) {
	g, err := readGraph(writeInput(t, "# web\na, b\nb,c\nc,a\n"))
	require.NoError(t, err)
	require.Equal(t, 3, g.VertexCount())
	require.Equal(t, 3, g.EdgeCount())
	require.True(t, g.HasEdge("a", "b"))

	_, err = readGraph(writeInput(t, "a,b,c\n"))
	require.ErrorIs(t, err, errBadRecord)

	_, err = readGraph(writeInput(t, "# nothing\n"))
	require.ErrorIs(t, err, errNoRows)
}

func TestReadTable(t *testing.T) {
	x, y, err := readTable(writeInput(t, "1,2,3\n4,5,6\n"))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {4, 5}}, x)
	require.Equal(t, []float64{3, 6}, y)

	_, _, err = readTable(writeInput(t, "1,2,3\n4,5\n"))
	require.ErrorIs(t, err, errBadRecord)

	_, _, err = readTable(writeInput(t, "1,x\n"))
	require.Error(t, err)
}

func TestPageRankCommandConverges(t *testing.T) {
	a := testApp(t, func(c *config.Config) { c.PageRank.Tolerance = 1e-9 })
	g, err := readGraph(writeInput(t, "a,b\nb,c\nc,a\nd,a\n"))
	require.NoError(t, err)

	res, err := a.pageRank(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.Less(t, res.Rounds, a.cfg.MaxRounds)
	require.Len(t, res.Ranks, 4)
	require.InDelta(t, 0.15/4, res.Ranks["d"], 1e-12)
	require.Greater(t, res.Ranks["a"], res.Ranks["d"])
}

func TestRegressCommand(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 30; i++ {
		x0, x1 := float64(i%5)/5, float64(i%3)/3
		x = append(x, []float64{x0, x1})
		y = append(y, 3*x0-2*x1)
	}

	for _, mini := range []bool{false, true} {
		a := testApp(t, func(c *config.Config) {
			c.MaxRounds = 60
			c.Regress.Stepsize = 0.5
			c.Regress.BatchSize = 2
		})
		res, err := a.regress(context.Background(), x, y, mini)
		require.NoError(t, err)
		require.Equal(t, 60, res.Rounds)
		require.Len(t, res.Losses, 60)
		require.Less(t, res.Losses[59], res.Losses[0])
		require.Len(t, res.Model, 2)
	}
}

func TestLoadGraphGenerate(t *testing.T) {
	g, err := loadGraph("", "cycle:6", 1, nil)
	require.NoError(t, err)
	require.Equal(t, 6, g.EdgeCount())

	a := testApp(t, nil)
	res, err := a.pageRank(context.Background(), g)
	require.NoError(t, err)
	require.True(t, res.Converged)
	for _, r := range res.Ranks {
		require.InDelta(t, 1.0/6, r, 1e-9)
	}

	_, err = loadGraph("", "ring:3", 1, nil)
	require.Error(t, err)
}
