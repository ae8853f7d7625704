/*
Package marc reads, cleans and writes bibliographic record streams.

# Quick Start

Run a cleanup pipeline over a file, converting formats on the way:

	p, err := pipeline.Load("cleanup.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	stats, err := marc.ProcessFile(ctx, p, "in.mrc", "out.mrk.xz", nil)
	fmt.Printf("%d read, %d written, %d changed\n", stats.Read, stats.Written, stats.Changed)

# Formats

Three stream formats are supported, picked from the file name or from
ReadOptions.Format / WriteOptions.Format:

  - ISO 2709 binary (.mrc, .iso, .marc, .dat)
  - Mnemonic text (.mrk, .txt): "=245  10$aTitle"
  - MARCXML (.xml)

A trailing .xz compresses or decompresses the stream. Uncompressed input is
memory-mapped unless ReadOptions.MapFile is false.

# Reading and Writing

	in, err := marc.Open("records.mrc", types.DefaultReadOptions())
	if err != nil {
	    return err
	}
	defer in.Close()
	for {
	    rec, err := in.Next()
	    if errors.Is(err, io.EOF) {
	        break
	    }
	    if err != nil {
	        log.Println(err) // one bad record; keep going
	        continue
	    }
	    fmt.Println(printer.RecordString(rec))
	}

# Error Handling

Decode failures are *types.Error values (ErrKindFormat, ErrKindCorrupt) that
name the record ordinal. Process counts them as invalid records, logs them and
moves on; any other error aborts the run.
*/
package marc
