package scaffold

// templateFile is one rendered file inside a built-in template. Path is
// relative to the generated project root; Content is a text/template body
// with access to {{.Name}} and {{.Year}}.
type templateFile struct {
	Path    string
	Content string
	Mode    uint32 // zero means 0644
}

// builtinTemplates are the starter trees shipped with the tool, one per
// supported ecosystem. User-authored packs imported via `forge templates add`
// extend this set at runtime.
var builtinTemplates = map[string][]templateFile{
	"c": {
		{Path: "src/main.c", Content: `#include <stdio.h>

int main(void) {
    printf("Hello from {{.Name}}!\n");
    return 0;
}
`},
		{Path: "Makefile", Content: `CC = gcc
CFLAGS = -Wall -Wextra

all: build/{{.Name}}

build/{{.Name}}: src/main.c
	mkdir -p build
	$(CC) $(CFLAGS) src/main.c -o build/{{.Name}}

clean:
	rm -rf build
`},
	},
	"cpp": {
		{Path: "src/main.cpp", Content: `#include <iostream>

int main() {
    std::cout << "Hello from {{.Name}}!" << std::endl;
    return 0;
}
`},
		{Path: "Makefile", Content: `CXX = g++
CXXFLAGS = -Wall -Wextra

all: build/{{.Name}}

build/{{.Name}}: src/main.cpp
	mkdir -p build
	$(CXX) $(CXXFLAGS) src/main.cpp -o build/{{.Name}}

clean:
	rm -rf build
`},
	},
	"go": {
		{Path: "go.mod", Content: `module {{.Name}}

go 1.24
`},
		{Path: "main.go", Content: `package main

import "fmt"

func main() {
	fmt.Println("Hello from {{.Name}}!")
}
`},
	},
	"rust": {
		{Path: "Cargo.toml", Content: `[package]
name = "{{.Name}}"
version = "0.1.0"
edition = "2021"
`},
		{Path: "src/main.rs", Content: `fn main() {
    println!("Hello from {{.Name}}!");
}
`},
	},
	"node": {
		{Path: "package.json", Content: `{
  "name": "{{.Name}}",
  "version": "1.0.0",
  "main": "index.js",
  "scripts": {
    "start": "node index.js"
  }
}
`},
		{Path: "index.js", Content: `console.log("Hello from {{.Name}}!");
`},
	},
	"python": {
		{Path: "main.py", Content: `def main():
    print("Hello from {{.Name}}!")


if __name__ == "__main__":
    main()
`},
		{Path: "requirements.txt", Content: ""},
	},
	"web": {
		{Path: "index.html", Content: `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Name}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <h1>{{.Name}}</h1>
  <script src="script.js"></script>
</body>
</html>
`},
		{Path: "style.css", Content: `body {
  font-family: sans-serif;
  margin: 2rem;
}
`},
		{Path: "script.js", Content: `console.log("{{.Name}} loaded");
`},
	},
}
