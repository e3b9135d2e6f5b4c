// Command rtreeindex builds an in-memory R-tree from a CSV file of
// rectangles and answers one query against it, printing the matches
// as a GeoJSON FeatureCollection. It is a thin driver around the
// rtree package; it performs no persistence or network I/O beyond
// reading the one input file.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/tormol/geoindex/config"
	"github.com/tormol/geoindex/geo"
	"github.com/tormol/geoindex/logger"
	"github.com/tormol/geoindex/rtree"
)

func main() {
	input := flag.String("input", "", "CSV file of minX,minY,maxX,maxY,id rows")
	op := flag.String("op", "intersect", "query to run: intersect, contain, or nearest")
	rectArg := flag.String("rect", "", "minX,minY,maxX,maxY for intersect/contain")
	pointArg := flag.String("point", "0,0", "x,y for nearest")
	count := flag.Int("n", 1, "result count for nearest")
	furthest := flag.Float64("furthest", 0, "distance cutoff for nearest; 0 means unbounded")
	maxEntries := flag.Int("max-entries", 0, "node fanout upper bound; 0 uses the package default")
	minEntries := flag.Int("min-entries", 0, "node fanout lower bound; 0 uses the package default")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := logger.Info
	if *verbose {
		level = logger.Debug
	}
	log := logger.NewLogger(os.Stdout, level)
	defer log.Close()

	if *input == "" {
		log.Fatal("missing -input")
	}

	tree := rtree.New(config.Load(config.RTreeConfig{
		MaxNodeEntries: *maxEntries,
		MinNodeEntries: *minEntries,
	}, log))

	byId, err := loadCSV(*input, tree)
	log.FatalIfErr(err, "load %s", *input)
	log.Info("indexed %s entries from %s", logger.SiMultiple(uint64(tree.Size()), 1000, 'G'), *input)

	log.ScheduleReport("index-stats", time.Minute, 24*time.Hour, func(c *logger.Composer, sinceLast time.Duration) {
		c.Writeln("index holds %s entries (%s since last report)",
			logger.SiMultiple(uint64(tree.Size()), 1000, 'G'), logger.RoundDuration(sinceLast, time.Second))
	})
	log.FlushReports()

	var ids []int32
	switch *op {
	case "intersect", "contain":
		r, perr := parseRect(*rectArg)
		log.FatalIfErr(perr, "parse -rect")
		sink := func(id int32) bool { ids = append(ids, id); return true }
		if *op == "intersect" {
			tree.Intersects(r, sink)
		} else {
			tree.Contains(r, sink)
		}
	case "nearest":
		p, perr := parsePoint(*pointArg)
		log.FatalIfErr(perr, "parse -point")
		cutoff := *furthest
		if cutoff <= 0 {
			cutoff = math.Inf(1)
		}
		sink := func(id int32) bool { ids = append(ids, id); return true }
		if *count <= 1 {
			tree.Nearest(p, sink, cutoff)
		} else {
			tree.NearestN(p, sink, *count, cutoff)
		}
	default:
		log.Fatal("unknown -op %s", *op)
	}

	if err := writeGeoJSON(os.Stdout, ids, byId); err != nil {
		log.Fatal("writing GeoJSON: %s", err.Error())
	}
}

func loadCSV(path string, tree *rtree.RTree) (map[int32]geo.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	byId := make(map[int32]geo.Rectangle)
	r := csv.NewReader(f)
	r.FieldsPerRecord = 5
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		minX, _ := strconv.ParseFloat(row[0], 64)
		minY, _ := strconv.ParseFloat(row[1], 64)
		maxX, _ := strconv.ParseFloat(row[2], 64)
		maxY, _ := strconv.ParseFloat(row[3], 64)
		id, err := strconv.ParseInt(row[4], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", row[4], err)
		}
		rect := geo.New(minX, minY, maxX, maxY)
		tree.Insert(rect, int32(id))
		byId[int32(id)] = rect
	}
	return byId, nil
}

func parseRect(s string) (geo.Rectangle, error) {
	var minX, minY, maxX, maxY float64
	n, err := fmt.Sscanf(s, "%g,%g,%g,%g", &minX, &minY, &maxX, &maxY)
	if err != nil || n != 4 {
		return geo.Rectangle{}, fmt.Errorf("expected minX,minY,maxX,maxY, got %q", s)
	}
	return geo.New(minX, minY, maxX, maxY), nil
}

func parsePoint(s string) (geo.Point, error) {
	var x, y float64
	n, err := fmt.Sscanf(s, "%g,%g", &x, &y)
	if err != nil || n != 2 {
		return geo.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	return geo.Point{X: x, Y: y}, nil
}
