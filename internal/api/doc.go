// SPDX-License-Identifier: EPL-2.0

// Package api is the HTTP control surface of "yaudio serve", built on gin.
//
// Routes:
//
//	GET  /health
//	GET  /api/v1/status
//	POST /api/v1/notes        {"notes": "...", "wait": false}
//	POST /api/v1/play         {"path": "...", "wait": false}
//	POST /api/v1/stop
//	POST /api/v1/record       {"path": "..."}
//	POST /api/v1/record/stop
//	PUT  /api/v1/volume       {"file": 0-10, "speaker": 0-100, "gain": 0-255}
//	PUT  /api/v1/leds         {"index": 0, "r": 0, "g": 0, "b": 0, "brightness": 50}
//	GET  /api/v1/sensors
//
// Busy resources answer 409, malformed bodies 400 and missing hardware 503.
package api
