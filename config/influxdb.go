package config

import (
	"os"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

// InfluxDB stays nil when INFLUXDB_URL is unset; callers guard on that, so a
// cooperative running without a time-series store skips telemetry entirely.
var InfluxDB *InfluxClient

type InfluxClient struct {
	client   client.Client
	database string
}

func NewInfluxDB() error {
	url := os.Getenv("INFLUXDB_URL")
	if len(url) == 0 {
		return nil
	}

	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     url,
		Username: os.Getenv("INFLUXDB_USERNAME"),
		Password: os.Getenv("INFLUXDB_PASSWORD"),
	})
	if err != nil {
		return err
	}

	InfluxDB = &InfluxClient{
		client:   c,
		database: os.Getenv("INFLUXDB_DATABASE"),
	}

	return nil
}

func (c *InfluxClient) newBatchPoints() (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database:  c.database,
		Precision: "ns",
	})
}

// NewPoint writes a single measurement point, best effort. Failures are
// logged, never propagated: telemetry must not fail a liquidation.
func (c *InfluxClient) NewPoint(name string, tags map[string]string, fields map[string]interface{}) {
	bp, err := c.newBatchPoints()
	if err != nil {
		Logger.Errorf("Failed to create new batch point %v", err.Error())
		return
	}

	point, err := client.NewPoint(name, tags, fields, time.Now())
	if err != nil {
		Logger.Errorf("Error %v", err.Error())
		return
	}

	bp.AddPoint(point)

	if err := c.client.Write(bp); err != nil {
		Logger.Errorf("Error %v", err.Error())
	}
}
