package policy

import (
	"os"
	"path/filepath"
)

// sensitiveDirNames lists directory names that, wherever they appear on a
// scanned filesystem, are worth flagging to an operator deciding what to
// add to BlockedPaths. This list is advisory only — it feeds
// FindSensitiveFiles, never the oracle itself.
var sensitiveDirNames = []string{
	".ssh",
	".aws",
	".gnupg",
	".kube",
	".docker",
	".config/gcloud",
}

// sensitiveFileNames lists specific filenames, wherever found, worth
// flagging the same way.
var sensitiveFileNames = []string{
	"id_rsa",
	"id_ed25519",
	".netrc",
	".npmrc",
	".env",
	"credentials",
	"credentials.json",
	"shadow",
	"known_hosts",
}

// SensitiveFinding is one match produced by FindSensitiveFiles.
type SensitiveFinding struct {
	Path   string
	Reason string
}

// FindSensitiveFiles walks root looking for files and directories whose
// name matches a well-known sensitive pattern, for use by `pathlockctl
// scan` to suggest additions to an operator's BlockedPaths list. It never
// reads file contents and never follows symlinks out of root.
func FindSensitiveFiles(root string) ([]SensitiveFinding, error) {
	var findings []SensitiveFinding

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// A single unreadable entry shouldn't abort the whole scan.
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			for _, sn := range sensitiveDirNames {
				if name == filepath.Base(sn) {
					findings = append(findings, SensitiveFinding{Path: path, Reason: "sensitive directory: " + sn})
					break
				}
			}
			return nil
		}
		for _, sn := range sensitiveFileNames {
			if name == sn {
				findings = append(findings, SensitiveFinding{Path: path, Reason: "sensitive file: " + sn})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}
