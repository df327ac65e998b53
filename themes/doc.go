// Package themes groups a meeting's transcript segments into discussion
// themes.
//
// Each non-empty segment is embedded through an ai.Embedder and the vectors
// are partitioned with k-means (k-means++ seeding, fixed seed, ten restarts,
// lowest inertia wins). Every non-empty cluster becomes a core.Theme whose
// title comes from the member closest to the centroid by cosine similarity
// and whose confidence is the members' mean similarity to that centroid.
package themes
