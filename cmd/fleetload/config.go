package main

import (
	"os"
	"strconv"
	"strings"
)

// target is where one dataset is delivered.
type target struct {
	Object string

	BQTable string

	DBTable string

	PBIDatasetID string
	PBITable     string
}

type config struct {
	LogLevel    string
	Concurrency int
	BatchSize   int
	HTTPAddr    string

	SourceBucket string
	SourceDir    string

	GCPProject string
	BQDataset  string

	DBDriver string
	DBDSN    string

	PBIToken       string
	PBIWorkspaceID string

	Feedrate target
	TBNFe    target
	MESysOil target

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	CarrierAPIKey      string
	CarrierCode        string
	TrackedVesselsFile string
	ScheduleStartDate  string
	ScheduleDateRange  string

	SlackToken   string
	SlackChannel string
}

func loadConfig() config {
	return config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Concurrency: getIntEnv("CONCURRENCY", 1),
		BatchSize:   getIntEnv("BATCH_SIZE", 10000),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),

		SourceBucket: getEnv("SOURCE_BUCKET", ""),
		SourceDir:    getEnv("SOURCE_DIR", ""),

		GCPProject: getEnv("GCP_PROJECT", ""),
		BQDataset:  getEnv("BQ_DATASET", ""),

		DBDriver: getEnv("DB_DRIVER", "mysql"),
		DBDSN:    getEnv("DB_DSN", ""),

		PBIToken:       getEnv("PBI_TOKEN", ""),
		PBIWorkspaceID: getEnv("PBI_WORKSPACE_ID", ""),

		Feedrate: target{
			Object:       getEnv("SOURCE_OBJECT_FEEDRATE", "Feedrate.xlsx"),
			BQTable:      getEnv("BQ_TABLE_FEEDRATE", ""),
			DBTable:      getEnv("DB_TABLE_2", "feedrate"),
			PBIDatasetID: getEnv("PBI_DATASET_ID_FEEDRATE", ""),
			PBITable:     getEnv("PBI_TABLE_FEEDRATE", "FeedrateData"),
		},
		TBNFe: target{
			Object:       getEnv("SOURCE_OBJECT_TBN", "TBN_Fe.xlsx"),
			BQTable:      getEnv("BQ_TABLE_TBN", ""),
			DBTable:      getEnv("DB_TABLE_1", "tbn_fe"),
			PBIDatasetID: getEnv("PBI_DATASET_ID_TBN", ""),
			PBITable:     getEnv("PBI_TABLE_TBN", "VesselData"),
		},
		MESysOil: target{
			Object:       getEnv("SOURCE_OBJECT_MESYS", "ME_SYS_oil.xlsx"),
			BQTable:      getEnv("BQ_TABLE_MESYS", ""),
			DBTable:      getEnv("DB_TABLE_3", "me_sys_oil"),
			PBIDatasetID: getEnv("PBI_DATASET_ID_MESYS", ""),
			PBITable:     getEnv("PBI_TABLE_MESYS", "MeSYSoil"),
		},

		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "vessels"),
		MongoCollection: getEnv("MONGO_COLLECTION", "schedules"),

		CarrierAPIKey:      getEnv("CARRIER_API_KEY", ""),
		CarrierCode:        getEnv("CARRIER_CODE", "MAEU"),
		TrackedVesselsFile: getEnv("TRACKED_VESSELS_FILE", "trackedvessels.xlsx"),
		ScheduleStartDate:  getEnv("SCHEDULE_START_DATE", ""),
		ScheduleDateRange:  getEnv("SCHEDULE_DATE_RANGE", "P90D"),

		SlackToken:   getEnv("SLACK_TOKEN", ""),
		SlackChannel: getEnv("SLACK_CHANNEL", ""),
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getIntEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
