// Package topics suggests repository topics from name keywords and parses
// operator-entered topic lists.
package topics
