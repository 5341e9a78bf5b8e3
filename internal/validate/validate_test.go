package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/recipeforge/internal/recipe"
)

// validRecord builds a representative, fully valid recipe record.
func validRecord() recipe.Record {
	return recipe.Record{
		recipe.FieldEasyblock:   cty.StringVal("ConfigureMake"),
		recipe.FieldName:        cty.StringVal("hwloc"),
		recipe.FieldVersion:     cty.StringVal("1.11.8"),
		recipe.FieldHomepage:    cty.StringVal("https://www.open-mpi.org/projects/hwloc/"),
		recipe.FieldDescription: cty.StringVal("Portable Hardware Locality library"),
		recipe.FieldToolchain: cty.TupleVal([]cty.Value{
			cty.StringVal("GCC"), cty.StringVal("6.4.0-2.28"),
		}),
		recipe.FieldDependencies: cty.TupleVal([]cty.Value{
			cty.TupleVal([]cty.Value{cty.StringVal("numactl"), cty.StringVal("2.0.11")}),
		}),
		recipe.FieldSources: cty.TupleVal([]cty.Value{
			cty.StringVal("hwloc-1.11.8.tar.gz"),
		}),
		recipe.FieldConfigOpts: cty.StringVal("--disable-cairo"),
		recipe.FieldOSDependencies: cty.TupleVal([]cty.Value{
			cty.TupleVal([]cty.Value{cty.StringVal("libnuma-dev"), cty.StringVal("numactl-devel")}),
		}),
		recipe.FieldSanityCheckPaths: cty.ObjectVal(map[string]cty.Value{
			recipe.SanityCheckFiles: cty.TupleVal([]cty.Value{
				cty.StringVal("bin/lstopo"), cty.StringVal("lib/libhwloc.%s"),
			}),
			recipe.SanityCheckDirs: cty.TupleVal([]cty.Value{
				cty.StringVal("share/man"),
			}),
		}),
		recipe.FieldModuleClass: cty.StringVal("system"),
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(validRecord()))
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	valid := validRecord()
	broken := validRecord()
	delete(broken, recipe.FieldName)

	// --- Act / Assert ---
	// Validating the same unmodified record twice yields the same result.
	require.NoError(t, Validate(valid))
	require.NoError(t, Validate(valid))

	first := Validate(broken)
	second := Validate(broken)
	require.Error(t, first)
	require.Equal(t, first, second)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	for _, field := range recipe.RequiredFields {
		field := field
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			delete(rec, field)

			err := Validate(rec)
			require.Error(t, err)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			require.Equal(t, field, missing.Field)
			require.Equal(t, field, missing.Subject())
		})
	}
}

func TestValidate_EmptyNameAndVersion(t *testing.T) {
	t.Parallel()

	for _, field := range []string{recipe.FieldName, recipe.FieldVersion} {
		rec := validRecord()
		rec[field] = cty.StringVal("")

		var missing *MissingFieldError
		require.ErrorAs(t, Validate(rec), &missing)
		require.Equal(t, field, missing.Field)
	}
}

func TestValidate_RequiredFieldWrongType(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec[recipe.FieldVersion] = cty.NumberIntVal(3)

	var missing *MissingFieldError
	require.ErrorAs(t, Validate(rec), &missing)
	require.Equal(t, recipe.FieldVersion, missing.Field)
}

func TestValidate_Toolchain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   cty.Value
		wantErr bool
	}{
		{
			name:  "system sentinel",
			value: cty.StringVal(recipe.SystemToolchainName),
		},
		{
			name: "name version pair",
			value: cty.TupleVal([]cty.Value{
				cty.StringVal("foss"), cty.StringVal("2018a"),
			}),
		},
		{
			name: "name version record",
			value: cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal("GCC"), "version": cty.StringVal("6.4.0-2.28"),
			}),
		},
		{
			name:    "arbitrary string",
			value:   cty.StringVal("GCC"),
			wantErr: true,
		},
		{
			name: "three element tuple",
			value: cty.TupleVal([]cty.Value{
				cty.StringVal("GCC"), cty.StringVal("6.4.0-2.28"), cty.StringVal("extra"),
			}),
			wantErr: true,
		},
		{
			name: "record with unrecognized key",
			value: cty.ObjectVal(map[string]cty.Value{
				"name": cty.StringVal("GCC"), "version": cty.StringVal("6.4.0"), "hidden": cty.StringVal("no"),
			}),
			wantErr: true,
		},
		{
			name:    "number",
			value:   cty.NumberIntVal(2018),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			rec[recipe.FieldToolchain] = tt.value

			err := Validate(rec)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var malformed *MalformedToolchainError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, recipe.FieldToolchain, malformed.Field)
		})
	}
}

func TestValidate_Dependencies(t *testing.T) {
	t.Parallel()

	dep := func(elems ...cty.Value) cty.Value { return cty.TupleVal(elems) }
	str := cty.StringVal

	tests := []struct {
		name    string
		value   cty.Value
		wantErr bool
	}{
		{
			name:  "minimal two element tuple",
			value: dep(dep(str("hwloc"), str("1.11.8"))),
		},
		{
			name:  "with versionsuffix",
			value: dep(dep(str("CUDA"), str("9.1.85"), str(""))),
		},
		{
			name: "with toolchain override",
			value: dep(dep(str("hwloc"), str("1.11.8"), str(""),
				dep(str("GCC"), str("6.4.0-2.28")))),
		},
		{
			name: "with system toolchain override",
			value: dep(dep(str("zlib"), str("1.2.11"), str(""),
				str(recipe.SystemToolchainName))),
		},
		{
			name:  "empty list",
			value: cty.EmptyTupleVal,
		},
		{
			name:    "single element tuple",
			value:   dep(dep(str("hwloc"))),
			wantErr: true,
		},
		{
			name:    "five element tuple",
			value:   dep(dep(str("a"), str("b"), str("c"), str(recipe.SystemToolchainName), str("e"))),
			wantErr: true,
		},
		{
			name:    "non tuple entry",
			value:   dep(str("hwloc")),
			wantErr: true,
		},
		{
			name:    "toolchain override without versionsuffix shape",
			value:   dep(dep(str("hwloc"), str("1.11.8"), dep(str("GCC"), str("6.4.0")))),
			wantErr: true,
		},
		{
			name:    "malformed toolchain override",
			value:   dep(dep(str("hwloc"), str("1.11.8"), str(""), dep(str("GCC")))),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		for _, field := range []string{recipe.FieldDependencies, recipe.FieldBuildDependencies} {
			tt := tt
			field := field
			t.Run(tt.name+"/"+field, func(t *testing.T) {
				t.Parallel()

				rec := validRecord()
				delete(rec, recipe.FieldDependencies)
				rec[field] = tt.value

				err := Validate(rec)
				if !tt.wantErr {
					require.NoError(t, err)
					return
				}
				var malformed *MalformedDependencyError
				require.ErrorAs(t, err, &malformed)
				require.Equal(t, field, malformed.Field)
			})
		}
	}
}

func TestValidate_OSDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   cty.Value
		wantErr bool
	}{
		{
			name:  "plain package names",
			value: cty.TupleVal([]cty.Value{cty.StringVal("libibverbs-dev")}),
		},
		{
			name: "alternative sets",
			value: cty.TupleVal([]cty.Value{
				cty.TupleVal([]cty.Value{cty.StringVal("libibverbs-dev"), cty.StringVal("libibverbs-devel")}),
			}),
		},
		{
			name: "mixed names and sets",
			value: cty.TupleVal([]cty.Value{
				cty.StringVal("make"),
				cty.TupleVal([]cty.Value{cty.StringVal("libssl-dev"), cty.StringVal("openssl-devel")}),
			}),
		},
		{
			name:    "numeric entry",
			value:   cty.TupleVal([]cty.Value{cty.NumberIntVal(1)}),
			wantErr: true,
		},
		{
			name:    "numeric entry in set",
			value:   cty.TupleVal([]cty.Value{cty.TupleVal([]cty.Value{cty.NumberIntVal(1)})}),
			wantErr: true,
		},
		{
			name:    "not a sequence",
			value:   cty.StringVal("make"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			rec[recipe.FieldOSDependencies] = tt.value

			err := Validate(rec)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var malformed *MalformedOSDependenciesError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, recipe.FieldOSDependencies, malformed.Field)
		})
	}
}

func TestValidate_SanityCheckPaths(t *testing.T) {
	t.Parallel()

	paths := func(attrs map[string]cty.Value) cty.Value { return cty.ObjectVal(attrs) }
	strs := func(elems ...string) cty.Value {
		vals := make([]cty.Value, len(elems))
		for i, s := range elems {
			vals[i] = cty.StringVal(s)
		}
		return cty.TupleVal(vals)
	}

	tests := []struct {
		name       string
		value      cty.Value
		wantReason string
	}{
		{
			name: "files and dirs",
			value: paths(map[string]cty.Value{
				"files": strs("bin/lstopo"), "dirs": strs("include"),
			}),
		},
		{
			name: "unrecognized key libs",
			value: paths(map[string]cty.Value{
				"files": strs("lib/libfoo.a"), "libs": strs("libfoo"),
			}),
			wantReason: `unrecognized key "libs"`,
		},
		{
			name: "missing dirs key",
			value: paths(map[string]cty.Value{
				"files": strs("bin/lstopo"),
			}),
			wantReason: `missing required key "dirs"`,
		},
		{
			name: "non string path entry",
			value: paths(map[string]cty.Value{
				"files": cty.TupleVal([]cty.Value{cty.NumberIntVal(42)}), "dirs": strs(),
			}),
			wantReason: "expected a path template",
		},
		{
			name:       "not a record",
			value:      strs("bin/lstopo"),
			wantReason: "expected a record",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			rec[recipe.FieldSanityCheckPaths] = tt.value

			err := Validate(rec)
			if tt.wantReason == "" {
				require.NoError(t, err)
				return
			}
			var malformed *MalformedSanityPathsError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, recipe.FieldSanityCheckPaths, malformed.Field)
			require.Contains(t, malformed.Reason, tt.wantReason)
		})
	}
}

func TestValidate_Checksums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   cty.Value
		wantErr bool
	}{
		{
			name:  "plain checksum string",
			value: cty.TupleVal([]cty.Value{cty.StringVal("cfdcc9a94ac8b02b47c0a22c8e42a2d1")}),
		},
		{
			name: "type and value pair",
			value: cty.TupleVal([]cty.Value{
				cty.TupleVal([]cty.Value{cty.StringVal("sha256"), cty.StringVal("deadbeef")}),
			}),
		},
		{
			name: "size pair with numeric value",
			value: cty.TupleVal([]cty.Value{
				cty.TupleVal([]cty.Value{cty.StringVal("size"), cty.NumberIntVal(1024)}),
			}),
		},
		{
			name: "three element entry",
			value: cty.TupleVal([]cty.Value{
				cty.TupleVal([]cty.Value{cty.StringVal("sha256"), cty.StringVal("deadbeef"), cty.StringVal("x")}),
			}),
			wantErr: true,
		},
		{
			name:    "numeric entry",
			value:   cty.TupleVal([]cty.Value{cty.NumberIntVal(7)}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			rec[recipe.FieldChecksums] = tt.value

			err := Validate(rec)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var malformed *MalformedChecksumError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, recipe.FieldChecksums, malformed.Field)
		})
	}
}

func TestValidate_UnknownFieldsAreKept(t *testing.T) {
	t.Parallel()

	// Fields this layer does not recognize are the engine's business and
	// must not fail validation.
	rec := validRecord()
	rec["parallel"] = cty.NumberIntVal(16)

	require.NoError(t, Validate(rec))
}
