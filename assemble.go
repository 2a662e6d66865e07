package bpfisa

// Assemble orchestrates parse -> resolve -> encode and concatenates the
// result into one contiguous byte stream. It aborts and returns the
// first error encountered; no partial output is ever returned.
//
// Grounded on CompileSourceFromBuffer/CompileSource's orchestration
// shape and on original_source/ubpf/assembler.py's top-level
// assemble() two-pass structure.
func Assemble(source string) ([]byte, error) {
	items, err := Parse(source)
	if err != nil {
		return nil, err
	}

	resolved, err := Resolve(items)
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, ins := range resolved {
		bytes, err := Encode(ins)
		if err != nil {
			return nil, err
		}
		out = append(out, bytes...)
	}
	return out, nil
}
