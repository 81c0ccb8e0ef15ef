package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/venicegeo/goes-ash-broker/abi"
	"github.com/venicegeo/goes-ash-broker/ash"
	"github.com/venicegeo/goes-ash-broker/geos"
	"github.com/venicegeo/goes-ash-broker/l1b"
	"github.com/venicegeo/goes-ash-broker/model"
	"github.com/venicegeo/goes-ash-broker/render"
	"github.com/venicegeo/goes-ash-broker/util"
)

//ashAction composites an ash false-color PNG from the archive band files
//nearest the requested capture time.
func ashAction(c *cli.Context) {
	ctx := &util.BasicLogContext{}

	capture, err := model.ParseSceneTime(c.String("scene-time"))
	if err != nil {
		log.Fatal("Could not parse scene-time: " + err.Error())
	}

	archive := abi.NewArchive(archiveHostForSatellite(c.String("satellite")))
	product := util.GetScenesPrefix()
	tolerance := util.GetAshTolerance()

	entries := []abi.ListEntry{}
	for _, prefix := range abi.HourPrefixesAround(product, capture, tolerance) {
		pageEntries, err := archive.ListPrefix(ctx, prefix)
		if err != nil {
			log.Fatal("Error listing archive prefix " + prefix + ": " + err.Error())
		}
		entries = append(entries, pageEntries...)
	}

	bandFiles, err := abi.NearestBandFiles(entries, model.AshBands, capture, tolerance)
	if err != nil {
		log.Fatal("Could not find ash band files: " + err.Error())
	}

	grids := map[int]*model.BTGrid{}
	var nav geos.Grid
	for _, channel := range model.AshBands {
		key := abi.HourPrefix(product, bandFiles[channel].Start) + bandFiles[channel].Name
		scene, err := fetchScene(ctx, archive, key)
		if err != nil {
			log.Fatal("Error reading band file: " + err.Error())
		}
		grids[channel] = scene.Band
		if channel == 14 {
			nav = scene.Nav
		}
	}

	img, err := ash.Composite(grids[11], grids[14], grids[15])
	if err != nil {
		log.Fatal("Error compositing image: " + err.Error())
	}

	marks, err := parseMarkFlag(c.String("mark"), nav)
	if err != nil {
		log.Fatal("Could not place mark: " + err.Error())
	}

	if err = writePNG(c.String("output"), img, marks); err != nil {
		log.Fatal("Error writing output: " + err.Error())
	}
	log.Println("Wrote", c.String("output"))
}

//fetchScene downloads an archive band file to a temp file and reads it.
func fetchScene(ctx util.LogContext, archive *abi.Archive, key string) (*l1b.Scene, error) {
	localPath, err := archive.FetchToTempFile(ctx, archive.SceneURL(key))
	if err != nil {
		return nil, err
	}
	defer os.Remove(localPath)

	return l1b.ReadSceneFile(localPath)
}

//archiveHostForSatellite resolves the archive host from the environment,
//falling back to the public NOAA bucket for the requested satellite.
func archiveHostForSatellite(satellite string) string {
	if _, ok := os.LookupEnv(util.GOES_ARCHIVE_HOST); ok {
		return util.GetArchiveHost()
	}

	digits := strings.TrimLeft(satellite, "Gg")
	if _, err := strconv.Atoi(digits); err != nil {
		log.Printf("Unrecognized satellite %q. Using default archive host.", satellite)
		return util.GetArchiveHost()
	}
	return fmt.Sprintf("https://noaa-goes%s.s3.amazonaws.com", digits)
}

//parseMarkFlag turns an optional "lat,lon" flag value into a grid marker.
func parseMarkFlag(flagValue string, nav geos.Grid) ([]render.Mark, error) {
	if flagValue == "" {
		return nil, nil
	}

	parts := strings.Split(flagValue, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("mark must be lat,lon; got %q", flagValue)
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("mark must be lat,lon; got %q", flagValue)
	}

	col, row, err := nav.LatLonToGrid(lat, lon)
	if err != nil {
		return nil, err
	}

	return []render.Mark{{Row: row, Col: col}}, nil
}

func writePNG(path string, img *ash.Image, marks []render.Mark) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return render.PNG(out, img, marks)
}
