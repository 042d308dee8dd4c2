package archie

import "fmt"

// Operation is one of the actions archie can synthesize a command for.
type Operation int

const (
	OpExtract Operation = iota + 1
	OpZip
	OpZipEncrypted
	OpTar
	OpAppend
	OpExtractAll
)

var operationNames = map[Operation]string{
	OpExtract:      "extract",
	OpZip:          "zip",
	OpZipEncrypted: "zip-encrypt",
	OpTar:          "tar",
	OpAppend:       "append",
	OpExtractAll:   "extract-all",
}

// operationAliases maps the short and long flags accepted on the command line.
var operationAliases = map[string]Operation{
	"-x": OpExtract, "-u": OpExtract, "-d": OpExtract,
	"--unpack": OpExtract, "--decompress": OpExtract, "--extract": OpExtract,
	"-xa": OpExtractAll, "-ax": OpExtractAll, "--extract-all": OpExtractAll,
	"-z": OpZip, "--zip": OpZip,
	"-ze": OpZipEncrypted, "-ez": OpZipEncrypted, "--zip-encrypt": OpZipEncrypted,
	"-t": OpTar, "--tar": OpTar,
	"-a": OpAppend, "--append": OpAppend,
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ParseOperation accepts either an alias flag ("-ze") or an operation name ("zip-encrypt").
func ParseOperation(s string) (Operation, error) {
	if op, ok := operationAliases[s]; ok {
		return op, nil
	}
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidOperation, s)
}
