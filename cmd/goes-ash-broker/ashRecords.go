package main

import (
	"log"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/venicegeo/goes-ash-broker/ash"
	"github.com/venicegeo/goes-ash-broker/records"
)

//ashRecordsAction composites an ash false-color PNG from a case stored in
//a serialized tensor record file.
func ashRecordsAction(c *cli.Context) {
	input := c.String("input")
	if input == "" {
		log.Fatal("No input file given. Use --input.")
	}

	file, err := os.Open(input)
	if err != nil {
		log.Fatal("Could not open input file: " + err.Error())
	}
	defer file.Close()

	record, err := records.NewReader(file).ReadAt(c.Int("index"))
	if err != nil {
		log.Fatal("Could not read record: " + err.Error())
	}

	kase, err := records.AshCase(record)
	if err != nil {
		log.Fatal("Could not decode case: " + err.Error())
	}

	img, err := ash.Composite(kase.Bands[11], kase.Bands[14], kase.Bands[15])
	if err != nil {
		log.Fatal("Error compositing image: " + err.Error())
	}

	marks, err := parseMarkFlag(c.String("mark"), kase.Nav)
	if err != nil {
		log.Fatal("Could not place mark: " + err.Error())
	}

	if err = writePNG(c.String("output"), img, marks); err != nil {
		log.Fatal("Error writing output: " + err.Error())
	}
	log.Println("Wrote", c.String("output"))
}
