// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package bookmark reads the portfolio's reading list.
//
// Three remote surfaces are involved, all plain HTTP JSON:
//
//   - the manifest, a single JSON document listing every bookmark
//     (id, key, title, description, url);
//   - scraped documents, one "<key>.json" per bookmark under a content
//     base URL, holding the article markdown and page metadata;
//   - the optional reading API, which stores per-bookmark reading
//     progress and text annotations.
//
// [Client] covers all three with conditional GETs (ETag) and an
// in-memory document cache. [S3Source] reads documents straight from
// the S3-compatible bucket the scraper writes to, and uploads the
// manifest. [LoadManifestFile] and [SaveManifestFile] handle the local
// JSONC manifest that maintainers edit before pushing. [DiskCache]
// persists fetched documents between runs.
//
// [Annotate] renders a document's markdown with the reader's
// highlights, favourite marker, and current reading position.
package bookmark
