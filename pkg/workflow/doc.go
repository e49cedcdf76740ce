// Package workflow folds generated build jobs into an existing CI pipeline
// definition.
//
// The updater backs the file up next to itself, inserts the image name
// suffix environment lines after the last existing APP_IMAGE..._NAME_SUFFIX
// line and appends the job stanzas at the end of the file. Lines and jobs
// already present are left alone, so repeated runs do not duplicate them.
package workflow
