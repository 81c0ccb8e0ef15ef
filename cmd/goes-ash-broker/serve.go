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
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"

	goeslocalindex "github.com/venicegeo/goes-ash-broker/goes_localindex"
	"github.com/venicegeo/goes-ash-broker/util"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("Hi"))
	})

	if discoverHandler, err := goeslocalindex.NewDiscoverHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/discover/goes", discoverHandler)
	} else {
		return nil, err
	}

	if metadataHandler, err := goeslocalindex.NewMetadataHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/goes/{id}", metadataHandler)
	} else {
		return nil, err
	}

	if ashImageHandler, err := goeslocalindex.NewAshImageHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/ash/{id}.png", ashImageHandler)
		router.Handle("/localindex/ash/{id}.jpg", ashImageHandler)
	} else {
		return nil, err
	}

	if locateHandler, err := goeslocalindex.NewLocateHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/locate/{id}", locateHandler)
	} else {
		return nil, err
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
