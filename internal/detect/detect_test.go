package detect

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-forge/internal/scan"
)

func tree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func TestConfigMarkerWinsOverSourceFiles(t *testing.T) {
	// A single unambiguous marker decides the type no matter how many
	// unrelated source files coexist in the tree.
	fs := tree(t, map[string]string{
		"/proj/go.mod":     "module demo\n",
		"/proj/scripts.py": "print(1)\n",
		"/proj/old.c":      "int main(){}\n",
		"/proj/web.js":     "console.log(1)\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeGo, typ)
}

func TestMarkerPriorityIsDeclarationOrder(t *testing.T) {
	// package.json is declared before go.mod, so a tree carrying both is
	// deterministically Node.
	fs := tree(t, map[string]string{
		"/proj/package.json": "{}",
		"/proj/go.mod":       "module demo\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeNode, typ)
}

func TestLockfileAloneIsAMarker(t *testing.T) {
	// A manifest deleted or gitignored still leaves the lockfile naming the
	// ecosystem; the lock must classify on its own.
	fs := tree(t, map[string]string{
		"/proj/Cargo.lock":  "# generated\n",
		"/proj/src/main.rs": "fn main() {}\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeRust, typ)

	fs = tree(t, map[string]string{
		"/proj/package-lock.json": "{}",
	})

	typ, err = Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeNode, typ)
}

func TestMarkerFoundInSubdirectory(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/backend/Cargo.toml": "[package]\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeRust, typ)
}

func TestEmptyTreeDoesNotMatch(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/README.md":  "hi",
		"/proj/data/x.csv": "1,2",
	})

	_, err := Detect(fs, "/proj")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestHTMLWithJSXIsWebFramework(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/public/index.html": "<html></html>",
		"/proj/src/App.jsx":       "export default function App() {}",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeWebFramework, typ)
}

func TestPlainHTMLIsStaticWeb(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/index.html": "<html></html>",
		"/proj/style.css":  "body {}",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeStaticWeb, typ)
}

func TestHTMLWithLockfileIsNotStaticWeb(t *testing.T) {
	// Dependency-manager residue without a manifest: the markup rule must
	// not classify, and nothing else matches here.
	fs := tree(t, map[string]string{
		"/proj/index.html": "<html></html>",
		"/proj/yarn.lock":  "",
	})

	_, err := Detect(fs, "/proj")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMakefileWithCPPHintClassifiesAsCPP(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/Makefile":     "all:\n\tg++ src/main.cpp legacy.c -o app\n",
		"/proj/src/main.cpp": "int main(){}\n",
		"/proj/legacy.c":     "void f(){}\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeCPP, typ)
}

func TestMakefileWithOnlyCSources(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/Makefile":   "all:\n\tcc main.c -o app\n",
		"/proj/main.c":     "int main(){}\n",
		"/proj/util/io.c":  "void io(){}\n",
		"/proj/util/io.h":  "void io();\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeC, typ)
}

func TestCMakeListsMapsToCPP(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/CMakeLists.txt": "project(demo)\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeCPP, typ)
}

func TestConfigureScriptMapsToC(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/configure": "#!/bin/sh\n",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeC, typ)
}

func TestFileCountPicksMajorityFamily(t *testing.T) {
	fs := tree(t, map[string]string{
		"/proj/a.py": "",
		"/proj/b.py": "",
		"/proj/c.py": "",
		"/proj/x.js": "",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypePython, typ)
}

func TestFileCountTieBreaksByFixedOrder(t *testing.T) {
	// C++ is checked before Python in the fixed order, so an even split
	// resolves to C++.
	fs := tree(t, map[string]string{
		"/proj/a.cpp": "",
		"/proj/b.py":  "",
	})

	typ, err := Detect(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, TypeCPP, typ)
}

func TestConventionalDirFallbackPrefersCPP(t *testing.T) {
	// The file-count rule would catch these sources first in a full Detect
	// pass, so the last-resort rule is exercised directly: both families
	// under a conventional source directory resolve to C++.
	fs := tree(t, map[string]string{
		"/proj/src/main.cpp": "",
		"/proj/src/old.c":    "",
	})

	d := &detector{scanner: scan.New(fs), root: "/proj"}
	typ, ok := d.matchConventionalDirs()
	require.True(t, ok)
	assert.Equal(t, TypeCPP, typ)
}
