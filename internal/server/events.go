package server

import (
	"database/sql"
	"os"

	"github.com/wingbank/appconfig/internal/events"
	"github.com/wingbank/appconfig/internal/logger"
)

// initEvents initializes the global events dispatcher. LoadConfig resolves
// the config path from WINGCFG_EVENTS_CONFIG when none is given.
func initEvents(db *sql.DB, driver, tablePrefix string) {
	evtConf, err := events.LoadConfig("")
	if err != nil {
		logger.L.Error("Failed to load events configuration", "err", err)
		os.Exit(1)
	}
	// The audit trail rides the same dispatcher as the external sinks.
	sinks := []events.Sink{&events.SQLAudit{DB: db, Driver: driver, TablePrefix: tablePrefix}}
	if wh := events.NewWebhookSink(evtConf.Sinks.Webhook); wh != nil {
		sinks = append(sinks, wh)
	}
	if rs, err := events.NewRedisSink(evtConf.Sinks.Redis); err == nil && rs != nil {
		sinks = append(sinks, rs)
	} else if err != nil {
		logger.L.Error("redis sink", "err", err)
	}
	if ks, err := events.NewKafkaSink(evtConf.Sinks.Kafka); err == nil && ks != nil {
		sinks = append(sinks, ks)
	} else if err != nil {
		logger.L.Error("kafka sink", "err", err)
	}
	events.Default = events.NewDispatcher(evtConf, &events.SQLDLQ{DB: db, Driver: driver, TablePrefix: tablePrefix}, sinks...)
}
