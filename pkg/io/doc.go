// Package io provides JSON import and export of class models.
//
// # Overview
//
// The JSON format lets any tool that can read declarations, in any
// language, feed the diagram engine without a Go source provider. It is
// also how the CLI caches a parsed source tree:
//
//	classgraph model src/main/java > model.json
//	classgraph diagram --model model.json
//
// # JSON Format
//
// The top-level object carries a format version and the classes in
// declaration order:
//
//	{
//	  "version": 1,
//	  "classes": [
//	    {
//	      "name": "com.acme.Widget",
//	      "package": "com.acme",
//	      "kind": "class",
//	      "modifiers": {"visibility": "public"},
//	      "super": {"name": "com.acme.Base"},
//	      "fields": [
//	        {"name": "parts", "type": {"name": "com.acme.Part", "dims": 1},
//	         "modifiers": {"visibility": "private"}}
//	      ],
//	      "doc": {"tags": [{"name": "opt", "text": "-attributes"}]}
//	    }
//	  ]
//	}
//
// Class names are qualified. Kinds are "class", "interface" and "enum";
// visibilities "private", "package", "protected" and "public". Classes
// marked "external" are known for linking and resolution but are not
// drawn as declared classes.
//
// # Import
//
// Use [ImportJSON] to read a model from a file path, or [ReadJSON] to read
// from any io.Reader. Both reject an unknown format version, unnamed
// classes and duplicate names, naming the offending class.
//
// # Export
//
// Use [ExportJSON] to write a model to a file, or [WriteJSON] to write to
// any io.Writer. Export followed by import yields an equal model.
package io
