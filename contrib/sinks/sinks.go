// Package sinks provides fleetloader sinks for relational databases,
// Power BI push datasets and MongoDB. Every sink fully replaces its
// destination.
package sinks
