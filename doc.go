/*
Package fleetloader is a small ETL framework which loads vessel performance
workbooks into BigQuery, relational databases, Power BI and MongoDB.

A Loader dispatches an Event (a Cloud Storage object or a local file) to
every Job whose Pattern matches the object name. A Job opens the object
through its Source, parses it into a workbook, lets its Dataset extract a
Table, and hands the Table to each Sink, which fully replaces the
destination's contents.

Getting started

	package main

	import (
		"context"
		"os"
		"regexp"

		"go.nownabe.dev/fleetloader"
		"go.nownabe.dev/fleetloader/contrib/datasets"
	)

	func main() {
		loader, err := fleetloader.New(fleetloader.WithLogLevel("info"))
		if err != nil {
			panic(err)
		}

		loader.MustAddJob(context.Background(), &fleetloader.Job{
			Name:    "feedrate",
			Pattern: regexp.MustCompile(`(?i)feedrate.*\.xlsx?$`),
			Dataset: datasets.Feedrate(),
			Notifier: &fleetloader.SlackNotifier{
				Token:   os.Getenv("SLACK_TOKEN"),
				Channel: os.Getenv("SLACK_CHANNEL"),
			},

			// Destination.
			Project:   os.Getenv("GCP_PROJECT"),
			DatasetID: os.Getenv("BQ_DATASET"),
			Table:     os.Getenv("BQ_TABLE_FEEDRATE"),
		})

		e := fleetloader.Event{Bucket: "vessel-reports", Name: "Feedrate.xlsx"}
		if err := loader.Handle(context.Background(), e); err != nil {
			os.Exit(1)
		}
	}

The extraction engine lives in package extract and knows nothing about
sources or sinks.
*/
package fleetloader
