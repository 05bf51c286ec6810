package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classmeta/classfile"
	"github.com/dhamidi/classmeta/internal/render"
)

func runDump(cmd *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read class file: %w", err)
	}

	resolver := classfile.NewResolver()
	reader, err := classfile.New(resolver, classfile.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("parse class file header: %w", err)
	}

	type_ := &classfile.TypeDefinition{}
	err = reader.Accept(type_, classfile.ClassVisitorFunc(
		func(t *classfile.TypeDefinition, major, minor uint16, access classfile.AccessFlags,
			internalName string, signature *string, superName *string, interfaces []string) {
			slog.Debug("decoded class", "name", internalName, "major", major, "minor", minor)
		}))
	if err != nil {
		return fmt.Errorf("decode class body: %w", err)
	}

	switch format {
	case "json":
		return render.NewJSONEncoder(os.Stdout).Encode(type_)
	case "line":
		return render.NewLineEncoder(os.Stdout).Encode(type_)
	default:
		return fmt.Errorf("unknown format: %s (expected json or line)", format)
	}
}
