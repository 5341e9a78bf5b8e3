package recipe

import (
	"github.com/zclconf/go-cty/cty"
)

// Record is a single parsed recipe file: a map from declared field name to
// its evaluated value. A Record is produced by a Loader, checked by the
// validate package, and only then translated into a typed Recipe. Fields
// this layer does not recognize are kept in the Record untouched, since the
// external engine may understand parameters we do not type-check.
type Record map[string]cty.Value

// Recognized recipe field names.
const (
	FieldEasyblock         = "easyblock"
	FieldName              = "name"
	FieldVersion           = "version"
	FieldVersionSuffix     = "versionsuffix"
	FieldHomepage          = "homepage"
	FieldDescription       = "description"
	FieldToolchain         = "toolchain"
	FieldDependencies      = "dependencies"
	FieldBuildDependencies = "builddependencies"
	FieldSources           = "sources"
	FieldSourceURLs        = "source_urls"
	FieldPatches           = "patches"
	FieldChecksums         = "checksums"
	FieldConfigOpts        = "configopts"
	FieldBuildOpts         = "buildopts"
	FieldInstallOpts       = "installopts"
	FieldOSDependencies    = "osdependencies"
	FieldSanityCheckPaths  = "sanity_check_paths"
	FieldModuleClass       = "moduleclass"
)

// RequiredFields must be present in every recipe before it can be planned.
var RequiredFields = []string{
	FieldEasyblock,
	FieldName,
	FieldVersion,
	FieldToolchain,
	FieldModuleClass,
}

// Recognized keys of the sanity_check_paths record.
const (
	SanityCheckFiles = "files"
	SanityCheckDirs  = "dirs"
)

// Has reports whether the record declares the given field.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// OSFamily identifies the host OS family a recipe's osdependencies may be
// conditioned on.
type OSFamily string

const (
	OSDebian OSFamily = "debian"
	OSUbuntu OSFamily = "ubuntu"
	OSRedHat OSFamily = "redhat"
	OSFedora OSFamily = "fedora"
	OSRHEL   OSFamily = "RHEL"
	OSSL     OSFamily = "SL"
	OSCentOS OSFamily = "centos"
)

// KnownOSFamilies lists every OS family recipes are allowed to branch on.
var KnownOSFamilies = []OSFamily{
	OSDebian, OSUbuntu, OSRedHat, OSFedora, OSRHEL, OSSL, OSCentOS,
}

// IsKnownOSFamily reports whether name is one of the supported OS families.
func IsKnownOSFamily(name string) bool {
	for _, fam := range KnownOSFamilies {
		if string(fam) == name {
			return true
		}
	}
	return false
}
