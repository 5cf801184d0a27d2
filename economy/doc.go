// Package economy turns generic parsed save file trees into typed economic
// records: world market pools, country finances, factories, RGOs and
// aggregated population statistics.
//
// Save files carry no schema, so every field read tolerates any shape at
// any position: wrong kinds, absent keys and unexpected sequences all
// degrade to zero values. Blocks that the game writes once as a mapping and
// repeatedly as a sequence (states, state_buildings, pops of one type) are
// normalized before walking.
package economy
