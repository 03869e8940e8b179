/*
Package observability provides lifecycle hooks for monitoring folium editors.

It includes Prometheus metrics for dispatched actions, a structured logging
hook, and an aggregator that fans one event out to several hook sets.
*/
package observability
