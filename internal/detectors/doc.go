// Package detectors holds the credential rule table, the false-positive
// filter and severity classification. A compiled RuleSet turns a file's
// lines into findings.
package detectors
