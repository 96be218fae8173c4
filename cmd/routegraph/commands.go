package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripatlas/routegraph/neo4jstore"
	"github.com/tripatlas/routegraph/routing"
	"github.com/tripatlas/routegraph/sqlitestore"
	"github.com/tripatlas/routegraph/transport"
)

var (
	configPath string

	flagRegion        int64
	flagFrom          int64
	flagTo            int64
	flagOrigin        int64
	flagStart         int64
	flagTargets       []int64
	flagStrategy      string
	flagFixture       string
	flagModes         []string
	flagMaxDistance   float64
	flagMaxIterations int

	rootCmd = &cobra.Command{
		Use:           "routegraph",
		Short:         "Multi-modal route planning over stored region graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	routeCmd = &cobra.Command{
		Use:   "route",
		Short: "Compute the optimal path between two nodes of a region",
		RunE:  runRoute,
	}

	nearbyCmd = &cobra.Command{
		Use:   "nearby",
		Short: "List every node reachable from an origin, optionally within a distance budget",
		RunE:  runNearby,
	}

	tourCmd = &cobra.Command{
		Use:   "tour",
		Short: "Plan a closed tour visiting every target node",
		RunE:  runTour,
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load a region graph fixture (or the built-in demo campus) into storage",
		RunE:  runSeed,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "routegraph.yaml", "path to the YAML configuration file")

	for _, cmd := range []*cobra.Command{routeCmd, nearbyCmd, tourCmd} {
		cmd.Flags().Int64Var(&flagRegion, "region", 0, "region id")
		cmd.Flags().StringVar(&flagStrategy, "strategy", "", "weight strategy: distance or time")
		cmd.Flags().StringSliceVar(&flagModes, "modes", nil, "restrict to these transport modes")
		cmd.MarkFlagRequired("region")
	}

	routeCmd.Flags().Int64Var(&flagFrom, "from", 0, "start node id")
	routeCmd.Flags().Int64Var(&flagTo, "to", 0, "end node id")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")

	nearbyCmd.Flags().Int64Var(&flagOrigin, "origin", 0, "origin node id")
	nearbyCmd.Flags().Float64Var(&flagMaxDistance, "max-distance", 0, "maximum cumulative distance in meters (omit for unbounded)")
	nearbyCmd.MarkFlagRequired("origin")

	tourCmd.Flags().Int64Var(&flagStart, "start", 0, "start node id")
	tourCmd.Flags().Int64SliceVar(&flagTargets, "targets", nil, "target node ids to visit")
	tourCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", 0, "2-opt pass budget (0 uses the planner default)")
	tourCmd.MarkFlagRequired("start")
	tourCmd.MarkFlagRequired("targets")

	seedCmd.Flags().StringVar(&flagFixture, "fixture", "", "YAML graph fixture to load (default: built-in demo campus)")

	rootCmd.AddCommand(routeCmd, nearbyCmd, tourCmd, seedCmd)
}

// stores bundles the opened backend with its cleanup.
type stores struct {
	graphs  routing.GraphRepository
	regions routing.RegionRepository
	sqlite  *sqlitestore.Store
	neo4j   *neo4jstore.Store
	close   func(context.Context) error
}

// openStores connects the configured storage backend.
func openStores(ctx context.Context, cfg StorageConfig) (*stores, error) {
	switch cfg.Backend {
	case "sqlite":
		store, err := sqlitestore.New(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}

		return &stores{
			graphs:  store,
			regions: store,
			sqlite:  store,
			close:   func(context.Context) error { return store.Close() },
		}, nil

	case "neo4j":
		store, err := neo4jstore.New(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
		if err != nil {
			return nil, err
		}

		return &stores{
			graphs:  store,
			regions: store,
			neo4j:   store,
			close:   store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or neo4j)", cfg.Backend)
	}
}

// setup loads configuration, the logger, and the storage backend; the
// caller must invoke the returned cleanup.
func setup(cmd *cobra.Command) (*routing.Service, *stores, func(), error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := loadConfig(configPath, explicit)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	st, err := openStores(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, nil, err
	}

	svc := routing.NewService(st.graphs, st.regions, routing.WithLogger(logger))
	cleanup := func() {
		if err := st.close(ctx); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}

	return svc, st, cleanup, nil
}

// parseStrategy maps the optional --strategy flag; empty means "use
// the operation default".
func parseStrategy(raw string) (transport.WeightStrategy, error) {
	if raw == "" {
		return "", nil
	}

	return transport.ParseStrategy(raw)
}

// printJSON writes the command result to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func runRoute(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	strategy, err := parseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	plan, err := svc.ComputeRoute(cmd.Context(), routing.RouteRequest{
		RegionID:       flagRegion,
		StartNodeID:    flagFrom,
		EndNodeID:      flagTo,
		Strategy:       strategy,
		TransportModes: flagModes,
	})
	if err != nil {
		return err
	}

	return printJSON(plan)
}

func runNearby(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	strategy, err := parseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	req := routing.ReachRequest{
		RegionID:       flagRegion,
		OriginNodeID:   flagOrigin,
		Strategy:       strategy,
		TransportModes: flagModes,
	}
	if cmd.Flags().Changed("max-distance") {
		req.MaxDistance = &flagMaxDistance
	}

	nodes, err := svc.ReachableNodes(cmd.Context(), req)
	if err != nil {
		return err
	}

	return printJSON(nodes)
}

func runTour(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	strategy, err := parseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	plan, err := svc.PlanTour(cmd.Context(), routing.TourRequest{
		RegionID:       flagRegion,
		StartNodeID:    flagStart,
		TargetNodeIDs:  flagTargets,
		Strategy:       strategy,
		TransportModes: flagModes,
		MaxIterations:  flagMaxIterations,
	})
	if err != nil {
		return err
	}

	return printJSON(plan)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, st, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	fixture := demoFixture()
	if flagFixture != "" {
		if fixture, err = loadFixture(flagFixture); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	switch {
	case st.sqlite != nil:
		return seedSQLite(ctx, st.sqlite, fixture)
	case st.neo4j != nil:
		return seedNeo4j(ctx, st.neo4j, fixture)
	default:
		return fmt.Errorf("no seedable storage backend configured")
	}
}
