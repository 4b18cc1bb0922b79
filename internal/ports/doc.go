// Package ports defines the interfaces (ports) that connect the catalog
// application layer to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the catalog needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [CatalogRepository]: Persists and loads the entry list
//   - [CategoryRepository]: Persists and loads the category schema
//   - [ImageProber]: Extracts pixel dimensions and scan resolution from
//     image files
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (JSON files, EXIF decoding). This separation enables
// testing application logic with in-memory fakes and swapping
// infrastructure without touching catalog rules.
package ports
