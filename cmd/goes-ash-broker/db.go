package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/venicegeo/goes-ash-broker/util"
)

var getDbConnectionFunc = getDbConnection

func getDbConnection(ctx util.LogContext) (*sql.DB, error) {
	connStr, err := getDbConnectionStr(ctx)
	if err != nil {
		return nil, err
	}
	return sql.Open("postgres", connStr)
}

func getDbConnectionStr(ctx util.LogContext) (string, error) {
	if databaseURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return appendSSLModeDisable(databaseURL), nil
	}

	util.LogInfo(ctx, "No DATABASE_URL variable found, checking VCAP_SERVICES")

	vcapJSON, ok := os.LookupEnv("VCAP_SERVICES")
	if !ok {
		return "", fmt.Errorf("no DATABASE_URL or VCAP_SERVICES variable found")
	}

	vcapServices, err := util.ParseVcapServices([]byte(vcapJSON))
	if err != nil {
		return "", err
	}

	postgresService := vcapServices.FindServiceByName("pz-postgres")
	if postgresService == nil {
		return "", fmt.Errorf("could not find `pz-postgres` service in VCAP_SERVICES; available services: %v",
			vcapServices.GetServiceNames())
	}

	uri, err := postgresService.Credentials.String("uri")
	if err != nil {
		return "", err
	}
	return appendSSLModeDisable(uri), nil
}

func appendSSLModeDisable(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.Contains(connStr, "?") {
		return connStr + "&sslmode=disable"
	}
	return connStr + "?sslmode=disable"
}
