package model

// Merge fills fields currently unset in into from from, never
// overwriting a present value. The four dependency lists move as one
// atomic group so dependency sets from different declarations of the
// same package are never mixed. Merging a record into itself is a no-op.
func Merge(into, from *Package) error {
	if into == from {
		return nil
	}

	if !into.AutoInstalled {
		into.AutoInstalled = from.AutoInstalled
	}

	if into.Src == nil {
		into.Src = from.Src
	}
	if into.Dest == nil {
		into.Dest = from.Dest
	}
	if into.Architecture == "" {
		into.Architecture = from.Architecture
	}
	if into.ArchPriority == 0 {
		into.ArchPriority = from.ArchPriority
	}
	if into.Section == "" {
		into.Section = from.Section
	}
	if into.Maintainer == "" {
		into.Maintainer = from.Maintainer
	}
	if into.Description == "" {
		into.Description = from.Description
	}

	if len(into.PreDepends) == 0 && len(into.Depends) == 0 &&
		len(into.Recommends) == 0 && len(into.Suggests) == 0 {
		into.PreDepends = from.PreDepends
		from.PreDepends = nil

		into.Depends = from.Depends
		from.Depends = nil

		into.Recommends = from.Recommends
		from.Recommends = nil

		into.Suggests = from.Suggests
		from.Suggests = nil
	}

	// At most the trivial self-provide: replace wholesale.
	if len(into.Provides) <= 1 {
		into.Provides = from.Provides
		from.Provides = nil
	}

	if len(into.Conflicts) == 0 {
		into.Conflicts = from.Conflicts
		from.Conflicts = nil
	}

	if len(into.Replaces) == 0 {
		into.Replaces = from.Replaces
		from.Replaces = nil
	}

	if into.Filename == "" {
		into.Filename = from.Filename
	}
	if into.LocalFilename == "" {
		into.LocalFilename = from.LocalFilename
	}
	if into.TmpUnpackDir == "" {
		into.TmpUnpackDir = from.TmpUnpackDir
	}
	if into.MD5Sum == "" {
		into.MD5Sum = from.MD5Sum
	}
	if into.SHA256Sum == "" {
		into.SHA256Sum = from.SHA256Sum
	}
	if into.Size == 0 {
		into.Size = from.Size
	}
	if into.InstalledSize == 0 {
		into.InstalledSize = from.InstalledSize
	}
	if into.Priority == "" {
		into.Priority = from.Priority
	}
	if into.Source == "" {
		into.Source = from.Source
	}
	if into.Tags == "" {
		into.Tags = from.Tags
	}

	if len(into.UserFields) == 0 {
		into.UserFields = append(into.UserFields, from.UserFields...)
		from.UserFields = nil
	}

	if len(into.Conffiles) == 0 {
		into.Conffiles = append(into.Conffiles, from.Conffiles...)
		from.Conffiles = nil
	}

	if into.InstalledFiles == nil {
		into.InstalledFiles = from.InstalledFiles
		into.installedFilesRefCnt = from.installedFilesRefCnt
		from.InstalledFiles = nil
	}

	if !into.Essential {
		into.Essential = from.Essential
	}

	return nil
}
