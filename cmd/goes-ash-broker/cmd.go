// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const brokerVersion = "1.0.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the goes-ash-broker webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the Broker CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "goes_ingest",
		Aliases: []string{"g"},
		Usage:   "Update the database with the latest GOES archive entries",
		Action:  goesIngestAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
	cli.Command{
		Name:    "ash",
		Aliases: []string{"a"},
		Usage:   "Composite an ash false-color image from archive band files",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "scene-time, t", Usage: "Capture time, e.g. 2019-09-17T00:00Z"},
			cli.StringFlag{Name: "satellite, s", Value: "G16", Usage: "Satellite, e.g. G16"},
			cli.StringFlag{Name: "output, o", Value: "ash.png", Usage: "Output PNG path"},
			cli.StringFlag{Name: "mark", Usage: "Optional lat,lon to mark on the image"},
		},
		Action: ashAction,
	},
	cli.Command{
		Name:  "ash_records",
		Usage: "Composite an ash false-color image from a tensor record file",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "input, i", Usage: "Tensor record file path"},
			cli.IntFlag{Name: "index, n", Usage: "Record index within the file"},
			cli.StringFlag{Name: "output, o", Value: "ash.png", Usage: "Output PNG path"},
			cli.StringFlag{Name: "mark", Usage: "Optional lat,lon to mark on the image"},
		},
		Action: ashRecordsAction,
	},
	cli.Command{
		Name:  "locate",
		Usage: "Project a lat/lon into the fixed grid of a local scene file",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "file, f", Usage: "ABI L1b NetCDF or tensor record file path"},
			cli.IntFlag{Name: "index, n", Usage: "Record index, for tensor record files"},
			cli.Float64Flag{Name: "lat", Usage: "Latitude, degrees north"},
			cli.Float64Flag{Name: "lon", Usage: "Longitude, degrees east"},
		},
		Action: locateAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "goes-ash-broker"
	app.Usage = "Launch a goes-ash-broker process"
	app.Commands = commands
	return
}

func versionAction(*cli.Context) {
	fmt.Println(brokerVersion)
}
