package rules

import (
	"github.com/xkilldash9x/relic-cli/api/schemas"
)

// builtinProfiles defines the shipped platform profiles. Each is
// independently constructable so tests can build them in isolation; a
// malformed builtin rule panics here, at first registry access, which the
// profile tests catch long before a release.
func builtinProfiles() []*Profile {
	return []*Profile{
		mustProfile(react19()),
		mustProfile(node22()),
	}
}

func mustProfile(p *Profile, err error) *Profile {
	if err != nil {
		panic(err)
	}
	return p
}

func react19() (*Profile, error) {
	ruleSet := []Rule{
		{
			ID:         "react/legacy-render",
			Matcher:    MustPattern(`ReactDOM\.render\(`),
			Severity:   schemas.SeverityCritical,
			Message:    "ReactDOM.render was removed in React 19.",
			Suggestion: "Create a root with ReactDOM.createRoot(container) and call root.render(element).",
			Rewrite:    Replace("ReactDOM.createRoot("),
		},
		{
			ID:         "react/unmount-at-node",
			Matcher:    Literal("ReactDOM.unmountComponentAtNode("),
			Severity:   schemas.SeverityCritical,
			Message:    "ReactDOM.unmountComponentAtNode was removed in React 19.",
			Suggestion: "Keep the root returned by createRoot and call root.unmount().",
			Rewrite:    Replace("root.unmount("),
		},
		{
			ID:         "react/find-dom-node",
			Matcher:    Literal("findDOMNode("),
			Severity:   schemas.SeverityCritical,
			Message:    "findDOMNode was removed in React 19.",
			Suggestion: "Attach a ref to the element you need and read it directly.",
		},
		{
			ID:         "react/string-refs",
			Matcher:    MustPattern(`ref="[^"]+"`),
			Severity:   schemas.SeverityCritical,
			Message:    "String refs were removed in React 19.",
			Suggestion: "Use a ref callback or useRef/createRef instead of a string ref.",
		},
		{
			ID:         "react/forward-ref",
			Matcher:    Literal("forwardRef("),
			Severity:   schemas.SeverityWarning,
			Message:    "forwardRef is deprecated in React 19; ref is a regular prop.",
			Suggestion: "Accept ref in the props object and drop the forwardRef wrapper.",
			Rewrite:    Replace("("),
		},
		{
			ID:         "react/prop-types",
			Matcher:    Literal("PropTypes."),
			Severity:   schemas.SeverityWarning,
			Message:    "propTypes are ignored by React 19 components.",
			Suggestion: "Move runtime prop checks to TypeScript types or a schema validator.",
		},
		{
			ID:         "react/default-props",
			Matcher:    Literal(".defaultProps"),
			Severity:   schemas.SeverityWarning,
			Message:    "defaultProps on function components is ignored in React 19.",
			Suggestion: "Use ES default parameter values in the component signature.",
		},
		{
			ID:         "react/legacy-context",
			Matcher:    MustPattern(`(childContextTypes|getChildContext)\b`),
			Severity:   schemas.SeverityWarning,
			Message:    "Legacy context (childContextTypes/getChildContext) was removed in React 19.",
			Suggestion: "Migrate to createContext and useContext.",
		},
		{
			ID:         "react/create-factory",
			Matcher:    Literal("React.createFactory("),
			Severity:   schemas.SeverityWarning,
			Message:    "React.createFactory was removed in React 19.",
			Suggestion: "Call React.createElement directly or use JSX.",
			Rewrite:    Replace("React.createElement("),
		},
		{
			ID:         "react/test-utils",
			Matcher:    MustPattern(`['"]react-dom/test-utils['"]`),
			Severity:   schemas.SeverityInfo,
			Message:    "react-dom/test-utils moved; act now lives in the react package.",
			Suggestion: "Import act from 'react' and migrate other helpers to @testing-library/react.",
		},
	}

	advisories := map[string]Advisory{
		"react": {
			Latest: "19.1.0",
			Status: schemas.StatusOutdated,
			Action: "Upgrade react to 19.x before migrating call sites.",
		},
		"react-dom": {
			Latest: "19.1.0",
			Status: schemas.StatusOutdated,
			Action: "Upgrade react-dom together with react.",
		},
		"prop-types": {
			Latest: "15.8.1",
			Status: schemas.StatusDeprecated,
			Action: "Remove prop-types; React 19 ignores component propTypes.",
		},
		"enzyme": {
			Latest: "3.11.0",
			Status: schemas.StatusIncompatible,
			Action: "Enzyme does not support React 18+; migrate tests to @testing-library/react.",
		},
		"react-test-renderer": {
			Latest: "19.1.0",
			Status: schemas.StatusDeprecated,
			Action: "react-test-renderer is deprecated; use @testing-library/react.",
		},
	}

	return NewProfile(
		"react-19",
		"React",
		"19.x",
		"Detects React APIs removed or deprecated as of React 19.",
		ruleSet,
		advisories,
	)
}

func node22() (*Profile, error) {
	ruleSet := []Rule{
		{
			ID:         "node/buffer-ctor",
			Matcher:    MustPattern(`new Buffer\(`),
			Severity:   schemas.SeverityCritical,
			Message:    "The Buffer constructor is removed; it was a long-standing security footgun.",
			Suggestion: "Use Buffer.from(data) or Buffer.alloc(size).",
			Rewrite:    Replace("Buffer.from("),
		},
		{
			ID:         "node/create-cipher",
			Matcher:    MustPattern(`crypto\.createCipher\(`),
			Severity:   schemas.SeverityCritical,
			Message:    "crypto.createCipher was removed; it derives keys with a weak digest.",
			Suggestion: "Use crypto.createCipheriv with an explicit key and IV.",
			Rewrite:    Replace("crypto.createCipheriv("),
		},
		{
			ID:         "node/process-binding",
			Matcher:    Literal("process.binding("),
			Severity:   schemas.SeverityCritical,
			Message:    "process.binding reaches into internals and throws on modern Node.",
			Suggestion: "Use the documented public API of the module you need.",
		},
		{
			ID:         "node/url-parse",
			Matcher:    Literal("url.parse("),
			Severity:   schemas.SeverityWarning,
			Message:    "url.parse is deprecated and has known parsing inconsistencies.",
			Suggestion: "Use the WHATWG URL constructor: new URL(input).",
			Rewrite:    Replace("new URL("),
		},
		{
			ID:         "node/fs-exists",
			Matcher:    Literal("fs.exists("),
			Severity:   schemas.SeverityWarning,
			Message:    "fs.exists is deprecated and race-prone.",
			Suggestion: "Use fs.access, or simply attempt the operation and handle the error.",
			Rewrite:    Replace("fs.access("),
		},
		{
			ID:         "node/domain-module",
			Matcher:    MustPattern(`require\(['"]domain['"]\)`),
			Severity:   schemas.SeverityWarning,
			Message:    "The domain module is deprecated pending removal.",
			Suggestion: "Use AsyncLocalStorage and standard error handling instead.",
		},
		{
			ID:         "node/sys-module",
			Matcher:    MustPattern(`require\(['"]sys['"]\)`),
			Severity:   schemas.SeverityWarning,
			Message:    "The sys module alias was removed; it has been util for a decade.",
			Suggestion: "Require 'util' directly.",
			Rewrite:    Replace("require('util')"),
		},
		{
			ID:         "node/punycode",
			Matcher:    MustPattern(`require\(['"]punycode['"]\)`),
			Severity:   schemas.SeverityInfo,
			Message:    "The bundled punycode module is deprecated.",
			Suggestion: "Depend on the userland punycode package if you still need it.",
		},
	}

	advisories := map[string]Advisory{
		"request": {
			Latest: "2.88.2",
			Status: schemas.StatusDeprecated,
			Action: "request is unmaintained; migrate to fetch or undici.",
		},
		"node-sass": {
			Latest: "9.0.0",
			Status: schemas.StatusIncompatible,
			Action: "node-sass does not build on Node 22; switch to sass (dart-sass).",
		},
		"mkdirp": {
			Latest: "3.0.1",
			Status: schemas.StatusOutdated,
			Action: "fs.mkdir supports recursive:true natively; mkdirp is usually unnecessary.",
		},
	}

	return NewProfile(
		"node-22",
		"Node.js",
		"22 LTS",
		"Detects Node.js APIs removed or deprecated as of Node 22.",
		ruleSet,
		advisories,
	)
}
