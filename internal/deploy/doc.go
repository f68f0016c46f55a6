// Package deploy pushes a published output tree to its hosting target.
//
// Two methods are supported: S3 sync (with optional CloudFront invalidation)
// and rsync over SSH. Method "none" yields a no-op deployer so the pipeline
// shape stays the same for local-only setups.
package deploy
