package execute

import "io/fs"

// OperationType identifies a filesystem mutation
type OperationType string

const (
	// OperationCreateDir creates a directory and its parents
	OperationCreateDir OperationType = "create_dir"

	// OperationCreateSymlink creates a symbolic link at Target pointing to Source
	OperationCreateSymlink OperationType = "create_symlink"

	// OperationCopyFile copies Source to Target
	OperationCopyFile OperationType = "copy_file"

	// OperationWriteFile writes Content to Target
	OperationWriteFile OperationType = "write_file"
)

// Operation is one planned filesystem mutation. The materializer
// synthesizes ordered operation lists and hands them to the Executor;
// nothing touches the filesystem during planning.
type Operation struct {
	Type    OperationType
	Source  string // absolute path; symlink target or copy source
	Target  string // absolute destination path
	Content []byte // write_file only
	Mode    fs.FileMode
}

// CreateDir plans a mkdir -p of path
func CreateDir(path string) Operation {
	return Operation{Type: OperationCreateDir, Target: path, Mode: 0755}
}

// CreateSymlink plans a symlink at linkPath pointing to source
func CreateSymlink(source, linkPath string) Operation {
	return Operation{Type: OperationCreateSymlink, Source: source, Target: linkPath}
}

// CopyFile plans a file copy from source to target
func CopyFile(source, target string) Operation {
	return Operation{Type: OperationCopyFile, Source: source, Target: target}
}

// WriteFile plans writing content to target with the given mode
func WriteFile(target string, content []byte, mode fs.FileMode) Operation {
	return Operation{Type: OperationWriteFile, Target: target, Content: content, Mode: mode}
}
