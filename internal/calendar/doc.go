// Package calendar provides the scheduling capability on top of the
// Google Calendar API.
//
// The client can list events in a window, create events from extracted
// meeting details, and propose free slots within working hours. Slot
// computation walks the gaps between busy ranges inside a 09:00 to 17:00
// workday and is implemented as a pure function so it can be tested
// without a live service.
package calendar
