// Package serializer writes values as JSON, YAML or a flattened FIELD/VALUE
// table to stdout or a file.
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "summary.yaml")
//	if err != nil {
//		return err
//	}
//	defer w.(serializer.Closer).Close()
//	return w.Serialize(ctx, out)
package serializer
