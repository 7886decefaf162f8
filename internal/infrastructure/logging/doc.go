// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Components take a *Logger through their options and default to NewNop,
// so tests stay quiet unless they inject one.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info", Component: "desktop"})
//	if err != nil {
//		return err
//	}
//	logger.Named("vfs").Info("Store opened", zap.String("slot", "limitlessos_vfs"))
package logging
