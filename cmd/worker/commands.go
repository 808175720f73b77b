package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/config"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/export"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/graph"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/ingest"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/repository"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/routing"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/storage/postgres"
)

func load(path string) (string, []domain.Waypoint, graph.Config, error) {
	b, err := ingest.ParseFile(path)
	if err != nil {
		return "", nil, graph.Config{}, err
	}
	wps, err := b.ToWaypoints()
	if err != nil {
		return "", nil, graph.Config{}, err
	}
	cfg := config.FromEnv().Routing.Graph
	return b.Building.ID, wps, cfg, nil
}

// RunSynthesize prints the graph of a building file as JSON, or writes it to
// an output path ending in .json or .yaml.
func RunSynthesize(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: worker synthesize <building file> [out.json|out.yaml]")
	}
	id, wps, cfg, err := load(args[0])
	if err != nil {
		return err
	}
	es, err := graph.Synthesize(wps, cfg)
	if err != nil {
		return err
	}
	doc := export.NewGraphDocument(id, cfg, wps, es)

	if len(args) < 2 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	switch strings.ToLower(filepath.Ext(args[1])) {
	case ".yaml", ".yml":
		return export.WriteYAML(args[1], doc)
	default:
		return export.WriteJSON(args[1], doc)
	}
}

// RunRoute prints the shortest path between two waypoints. Extra arguments
// close edges ("a-b") or nodes ("!id").
func RunRoute(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: worker route <building file> <start> <end> [a-b ...] [!node ...]")
	}
	_, wps, cfg, err := load(args[0])
	if err != nil {
		return err
	}
	es, err := graph.Synthesize(wps, cfg)
	if err != nil {
		return err
	}

	idx := routing.Index(wps)
	var edges [][2]string
	var nodes []string
	for _, a := range args[3:] {
		if strings.HasPrefix(a, "!") {
			nodes = append(nodes, strings.TrimPrefix(a, "!"))
			continue
		}
		pair, err := parseEdge(a, idx)
		if err != nil {
			return err
		}
		edges = append(edges, pair)
	}

	res, err := routing.ShortestPath(args[1], args[2], es, idx, routing.NewStaticClosures(edges, nodes))
	if err != nil {
		return err
	}
	fmt.Printf("%s (distance %.1f)\n", strings.Join(res.Path, " -> "), res.Distance)
	return nil
}

// parseEdge splits "a-b" at the one dash that leaves a known waypoint id on
// both sides, so ids may contain dashes themselves.
func parseEdge(arg string, idx map[string]domain.Waypoint) ([2]string, error) {
	var found [][2]string
	for i := 0; i < len(arg); i++ {
		if arg[i] != '-' {
			continue
		}
		from, to := arg[:i], arg[i+1:]
		_, okFrom := idx[from]
		_, okTo := idx[to]
		if okFrom && okTo {
			found = append(found, [2]string{from, to})
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return [2]string{}, fmt.Errorf("bad closure %q, want a-b of two known waypoints or !node", arg)
	default:
		return [2]string{}, fmt.Errorf("ambiguous closure %q, matches %v", arg, found)
	}
}

// RunDOT writes the building graph as Graphviz DOT.
func RunDOT(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: worker dot <building file> <out.dot>")
	}
	id, wps, cfg, err := load(args[0])
	if err != nil {
		return err
	}
	es, err := graph.Synthesize(wps, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], []byte(export.ToDOT(es, wps, nil, id)), 0644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d waypoints, %d edges)", args[1], len(wps), es.Len())
	return nil
}

// RunImport upserts a building file into the waypoint database.
func RunImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: worker import <building file>")
	}
	id, wps, _, err := load(args[0])
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("building file has no building.id")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("DB_HOST is required for import")
	}

	ctx := context.Background()
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}
	repo := repository.NewWaypointRepository(db)
	for i := range wps {
		if err := repo.Upsert(ctx, wps[i]); err != nil {
			return fmt.Errorf("waypoint %s: %w", wps[i].ID, err)
		}
	}
	log.Printf("imported %d waypoints into building %s", len(wps), id)
	return nil
}
