// Package manifest loads, edits and writes Cargo manifests.
//
// A Document keeps the original bytes next to the decoded TOML tree. Version
// edits are applied to both: the tree is mutated in place and each edited
// string token is remembered by its byte range, so the default writer can
// splice new versions into the original text and leave every other byte
// (comments, ordering, whitespace) unchanged. The canonical writer
// re-serializes the tree with go-toml instead.
//
// Typical usage:
//
//	doc, err := manifest.Load("Cargo.toml")
//	if err != nil {
//	    return err
//	}
//	section, err := doc.Section("dependencies")
//	if err != nil {
//	    return err
//	}
//	for _, dep := range section.Dependencies() {
//	    if dep.Version == "*" {
//	        dep.SetVersion("1.2.3")
//	    }
//	}
//	return doc.Save(false)
package manifest
