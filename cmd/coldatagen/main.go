// Command coldatagen exercises the coldata engine end to end from the
// command line: it builds a Collection over a flag-described schema,
// appends synthetic rows, scans them back (sequentially or with parallel
// workers), and reports what it saw. It gives the engine's append, scan,
// verify and result-equality operations a runnable caller outside of tests.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uilive"
	"github.com/paulbellamy/ratecounter"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/brimdata/coldata/coldata"
	"github.com/brimdata/coldata/colbuf"
	"github.com/brimdata/coldata/coltype"
	"github.com/brimdata/coldata/internal/collog"
	"github.com/brimdata/coldata/vector"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "coldatagen: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("coldatagen", flag.ExitOnError)
	schemaFlag := fs.String("schema", "int32,varchar", "comma-separated column types: int32,int64,varchar,list<int32>,...")
	rows := fs.Int("rows", 10000, "number of synthetic rows to generate")
	batch := fs.Int("batch", 2048, "rows per appended batch")
	width := fs.Uint("width", coldata.DefaultVectorWidth, "vector width (rows per chunk)")
	workers := fs.Int("workers", 1, "parallel scan workers (1 means sequential)")
	seed := fs.Int64("seed", 1, "RNG seed for synthetic data generation")
	verify := fs.Bool("verify", true, "run Verify() and a round-trip ResultEquals check")
	repl := fs.Bool("repl", false, "drop into an interactive re-scan prompt after generation")
	poolSize := fs.String("pool-size", "", "cap the backing heap to this many bytes, as '256MiB' or '1GiB' (empty means unbounded)")
	configPath := fs.String("config", "", "YAML file overriding the flags above (see fileConfig)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		applyConfig(cfg, schemaFlag, rows, batch, width, workers, seed, poolSize)
	}

	types, err := parseSchema(*schemaFlag)
	if err != nil {
		return err
	}
	capacity, err := parsePoolSize(*poolSize)
	if err != nil {
		return fmt.Errorf("pool-size: %w", err)
	}

	log := collog.New(collog.Config{})
	alloc := colbuf.NewAllocator(colbuf.NewRawHeapManager(capacity), colbuf.NewMetrics(nil))
	col, err := coldata.NewCollection(types, alloc, coldata.WithVectorWidth(uint32(*width)), coldata.WithLogger(log))
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	if err := generate(col, types, *rows, *batch, rng); err != nil {
		return err
	}

	fmt.Printf("row_count=%d chunk_count=%d column_count=%d\n", col.RowCount(), col.ChunkCount(), col.ColumnCount())

	start := time.Now()
	scanned, err := scanAll(col, *workers)
	if err != nil {
		return err
	}
	fmt.Printf("scanned %d rows across %d workers in %s\n", scanned, *workers, time.Since(start))

	if *verify {
		if err := col.Verify(); err != nil {
			return fmt.Errorf("verify failed: %w", err)
		}
		other, err := coldata.NewCollection(types, alloc, coldata.WithVectorWidth(uint32(*width)))
		if err != nil {
			return err
		}
		if err := replay(col, other); err != nil {
			return err
		}
		ok, err := coldata.ResultEquals(col, other)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("round-tripped collection does not equal the original")
		}
		fmt.Println("verify: ok")
	}

	if *repl {
		return runREPL(col)
	}
	return nil
}

func parseSchema(s string) ([]coltype.Type, error) {
	var types []coltype.Type
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		switch {
		case strings.HasPrefix(name, "list<") && strings.HasSuffix(name, ">"):
			inner := name[len("list<") : len(name)-1]
			elemTypes, err := parseSchema(inner)
			if err != nil || len(elemTypes) != 1 {
				return nil, fmt.Errorf("invalid list element type %q", inner)
			}
			types = append(types, coltype.NewTypeList(elemTypes[0]))
		default:
			t, err := primitiveByName(name)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("empty schema")
	}
	return types, nil
}

func primitiveByName(name string) (coltype.Type, error) {
	switch name {
	case "bool":
		return coltype.Bool, nil
	case "int8":
		return coltype.Int8, nil
	case "int16":
		return coltype.Int16, nil
	case "int32":
		return coltype.Int32, nil
	case "int64":
		return coltype.Int64, nil
	case "uint8":
		return coltype.Uint8, nil
	case "uint16":
		return coltype.Uint16, nil
	case "uint32":
		return coltype.Uint32, nil
	case "uint64":
		return coltype.Uint64, nil
	case "float", "float32":
		return coltype.Float32, nil
	case "double", "float64":
		return coltype.Float64, nil
	case "varchar", "string":
		return coltype.Varchar, nil
	default:
		return nil, fmt.Errorf("unknown column type %q", name)
	}
}

// generate appends rows synthetic batches of the requested schema, drawing
// on rng for values and a progress bar for large runs.
func generate(col *coldata.Collection, types []coltype.Type, total, batchSize int, rng *rand.Rand) error {
	var progress *uilive.Writer
	if total > 100000 && term.IsTerminal(int(os.Stdout.Fd())) {
		progress = uilive.New()
		progress.Start()
		defer progress.Stop()
	}
	rate := ratecounter.NewRateCounter(time.Second)
	var state coldata.AppendState
	if err := col.InitializeAppend(&state); err != nil {
		return err
	}
	defer state.Close()

	for done := 0; done < total; {
		n := batchSize
		if remaining := total - done; n > remaining {
			n = remaining
		}
		cols := make([]vector.Any, len(types))
		for i, t := range types {
			cols[i] = genColumn(t, n, rng)
		}
		if err := col.AppendWithState(&state, vector.NewBatch(types, cols)); err != nil {
			return err
		}
		done += n
		rate.Incr(int64(n))
		if progress != nil {
			fmt.Fprintf(progress, "generated %d/%d rows (%d rows/sec)\n", done, total, rate.Rate())
		}
	}
	return nil
}

func genColumn(t coltype.Type, n int, rng *rand.Rand) vector.Any {
	valid := vector.NewBitmap(uint32(n))
	nullEvery := 11
	switch lt := t.(type) {
	case *coltype.TypeList:
		offset := make([]uint32, n)
		length := make([]uint32, n)
		var pos uint32
		var total int
		for i := 0; i < n; i++ {
			if i%nullEvery == 0 {
				valid.SetInvalid(uint32(i))
				continue
			}
			l := uint32(rng.Intn(4))
			offset[i] = pos
			length[i] = l
			pos += l
			total += int(l)
		}
		child := genColumn(lt.Child, total, rng)
		return vector.NewList(lt, offset, length, child, valid)
	default:
		switch t.Physical() {
		case coltype.VARCHAR:
			var offsets []uint32
			var data []byte
			offsets = append(offsets, 0)
			for i := 0; i < n; i++ {
				if i%nullEvery == 0 {
					valid.SetInvalid(uint32(i))
				} else {
					s := randString(rng)
					data = append(data, s...)
				}
				offsets = append(offsets, uint32(len(data)))
			}
			return vector.NewVarchar(t, offsets, data, valid)
		case coltype.INT32:
			values := make([]int32, n)
			for i := range values {
				if i%nullEvery == 0 {
					valid.SetInvalid(uint32(i))
				}
				values[i] = rng.Int31()
			}
			return vector.NewFixed(t, values, valid)
		case coltype.INT64:
			values := make([]int64, n)
			for i := range values {
				if i%nullEvery == 0 {
					valid.SetInvalid(uint32(i))
				}
				values[i] = rng.Int63()
			}
			return vector.NewFixed(t, values, valid)
		case coltype.BOOL:
			values := make([]bool, n)
			for i := range values {
				if i%nullEvery == 0 {
					valid.SetInvalid(uint32(i))
				}
				values[i] = rng.Intn(2) == 1
			}
			return vector.NewFixed(t, values, valid)
		case coltype.DOUBLE:
			values := make([]float64, n)
			for i := range values {
				if i%nullEvery == 0 {
					valid.SetInvalid(uint32(i))
				}
				values[i] = rng.Float64()
			}
			return vector.NewFixed(t, values, valid)
		default:
			values := make([]int64, n)
			return vector.NewFixed(t, values, valid)
		}
	}
}

func randString(rng *rand.Rand) string {
	n := rng.Intn(40)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	return string(b)
}

func scanAll(col *coldata.Collection, workers int) (uint64, error) {
	var total uint64
	if workers <= 1 {
		var state coldata.ScanState
		col.InitializeScan(&state, coldata.ScanProperties{})
		defer state.Close()
		for {
			var batch *vector.Batch
			ok, err := col.Scan(&state, &batch)
			if err != nil {
				return 0, err
			}
			if !ok {
				break
			}
			total += uint64(batch.Size())
		}
		return total, nil
	}
	var mu lockedCounter
	err := col.ScanParallelWorkers(workers, coldata.ScanProperties{}, func(batch *vector.Batch) error {
		mu.add(uint64(batch.Size()))
		return nil
	})
	return mu.value(), err
}

func replay(src, dst *coldata.Collection) error {
	var state coldata.ScanState
	src.InitializeScan(&state, coldata.ScanProperties{})
	defer state.Close()
	for {
		var batch *vector.Batch
		ok, err := src.Scan(&state, &batch)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := dst.Append(batch); err != nil {
			return err
		}
	}
}

func runREPL(col *coldata.Collection) error {
	line := liner.NewLiner()
	defer line.Close()
	fmt.Println("press enter to re-scan, Ctrl-D to quit")
	for {
		if _, err := line.Prompt("> "); err != nil {
			return nil
		}
		n, err := scanAll(col, 1)
		if err != nil {
			return err
		}
		fmt.Printf("scanned %d rows\n", n)
	}
}
