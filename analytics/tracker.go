package analytics

import (
	"context"
	"fmt"
	"os"
	"time"
	"uniscope/client"
	"uniscope/database"
	"uniscope/helpers"

	influxdb2 "github.com/influxdata/influxdb-client-go"
)

// Tracker records unit-page visits in the analytics cache (influxDB)
// the data powers the "hot units" figures on the unit pages
type Tracker struct {
	influxClient influxdb2.Client
	VisitorAPI   database.InfluxAPI
	// page refreshes are filtered through the request registry
	Requests *client.Registry
}

type Visit struct {
	VisitTS  time.Time `json:"visitTS"`
	UnitCode string    `json:"unitCode"`
	UserID   string    `json:"userID"`
}

// SetConnections initializes the instance
func (t *Tracker) SetConnections(influxClient *influxdb2.Client) {
	t.influxClient = *influxClient
}

// SaveVisit stores event data in the analytics cache
// clientID identifies the caller (IP) to suppress double counts on refresh
func (t *Tracker) SaveVisit(unitCode string, clientID string, userID string) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	// refreshes of the same page are not new visits
	if t.Requests != nil && !t.Requests.Continue(clientID, unitCode) {
		return
	}

	// the unit code is part of the key so aggregation queries can group on it
	// the risk of high series cardinality is accepted, since units are what
	// we're interested in
	// https://docs.influxdata.com/influxdb/v2.0/write-data/best-practices/resolve-high-cardinality/
	p := influxdb2.NewPoint(
		"visit",
		map[string]string{"unitCode": "unit_" + unitCode},
		map[string]interface{}{"userId": userID},
		time.Now())

	// ToDo: log Error
	t.VisitorAPI.WriteAPI.WritePoint(context.Background(), p)
}

// GetVisits counts the number of visits of a unit page
// the value is "live" - read from the analytics cache (influxDB)
// which is set to a maximum period (TTL) of 30 days
func (t *Tracker) GetVisits(unitCode string, startDT time.Time) (int64, error) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return -1, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["unitCode"] == "%s")
		|> count()
		|> yield(name: "count")`

	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		"unit_"+unitCode)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	// nur 1 record
	var res interface{}
	for result.Next() {
		res = result.Record().Value()
	}

	var cnt int64 = 0
	if res != nil {
		cnt = res.(int64)
	}

	return cnt, nil
}
