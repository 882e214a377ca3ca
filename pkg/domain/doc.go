// Package domain contains the shared types of the name-discovery engine:
// generated candidates, filter decisions, scored candidates, availability
// results and the AutoFind request/result contracts. The types here carry no
// behavior beyond small derivations; all logic lives in the internal packages.
package domain
