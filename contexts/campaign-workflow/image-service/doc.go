// Package imageservice manages field evidence images attached to campaigns:
// upload by assigned contractors or employees, a single-pass moderation
// review (pending -> approved | rejected), and deletion.
//
// Layout mirrors campaign-service: domain holds the entity and its review
// rules, ports declare the repository, file store and the cross-service read
// ports, application carries the use cases, adapters provide memory and
// postgres persistence plus the HTTP handler.
//
// Campaign existence and contractor assignment are checked through narrow
// read ports (CampaignReader, AssignmentChecker) wired in the bootstrap, so
// this service never imports campaign-service internals.
package imageservice
