package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MediaRef locates one image on disk or inside an archive
type MediaRef struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// Name returns the display name of the media
func (r MediaRef) Name() string {
	if r.EntryPath != "" {
		return filepath.Base(r.ArchivePath) + ":" + filepath.Base(r.EntryPath)
	}
	return filepath.Base(r.Path)
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// loadRequest asks the worker to decode one image
type loadRequest struct {
	Index int
	Thumb bool
}

// PreloadManager decodes images in the background so navigation and the grid never wait on disk
type PreloadManager struct {
	requests chan loadRequest
	ctx      context.Context
	cancel   context.CancelFunc
	store    *MediaStore
	mu       sync.Mutex
	pending  map[loadRequest]bool
	wg       sync.WaitGroup
}

// NewPreloadManager creates a PreloadManager and starts its worker
func NewPreloadManager(store *MediaStore) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requests: make(chan loadRequest, 256),
		ctx:      ctx,
		cancel:   cancel,
		store:    store,
		pending:  make(map[loadRequest]bool),
	}

	pm.wg.Add(1)
	go pm.worker()

	return pm
}

// Enqueue schedules a load unless the same load is already pending.
// Requests are dropped when the queue is full; they are repeated on the next frame.
func (pm *PreloadManager) Enqueue(req loadRequest) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.pending[req] {
		return
	}
	select {
	case pm.requests <- req:
		pm.pending[req] = true
	default:
	}
}

// Stop stops the worker and waits for it to exit
func (pm *PreloadManager) Stop() {
	pm.cancel()
	pm.wg.Wait()
}

func (pm *PreloadManager) worker() {
	defer pm.wg.Done()
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requests:
			if req.Thumb {
				pm.store.loadThumbnail(req.Index)
			} else {
				pm.store.Image(req.Index)
			}
			pm.mu.Lock()
			delete(pm.pending, req)
			pm.mu.Unlock()
		}
	}
}

// MediaStore owns the media list and the decoded image caches
type MediaStore struct {
	refs      []MediaRef
	full      *lru.Cache[string, *ebiten.Image]
	thumbs    *lru.Cache[string, *ebiten.Image]
	thumbSize int
	preload   *PreloadManager
}

func newImageCache(size int) *lru.Cache[string, *ebiten.Image] {
	evict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](size, evict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache of size %d: %v", size, err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, evict)
	}
	return cache
}

// NewMediaStore creates a store over refs with the given cache sizes
func NewMediaStore(refs []MediaRef, cacheSize, thumbSize int) *MediaStore {
	m := &MediaStore{
		refs:      refs,
		full:      newImageCache(cacheSize),
		thumbs:    newImageCache(max(64, len(refs))),
		thumbSize: thumbSize,
	}
	m.preload = NewPreloadManager(m)
	return m
}

// Locators returns the media paths in display order
func (m *MediaStore) Locators() []string {
	locators := make([]string, len(m.refs))
	for i, ref := range m.refs {
		locators[i] = ref.Path
	}
	return locators
}

// Count returns the number of media
func (m *MediaStore) Count() int {
	return len(m.refs)
}

// Name returns the display name at idx
func (m *MediaStore) Name(idx int) string {
	if idx < 0 || idx >= len(m.refs) {
		return ""
	}
	return m.refs[idx].Name()
}

// Image returns the full image at idx, loading it synchronously on a cache miss.
// A failed load yields a placeholder describing the error.
func (m *MediaStore) Image(idx int) *ebiten.Image {
	if idx < 0 || idx >= len(m.refs) {
		return nil
	}
	ref := m.refs[idx]

	if img, ok := m.full.Get(ref.Path); ok {
		return img
	}

	img, err := loadImage(ref)
	if err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v", idx+1, len(m.refs), ref.Path, err)
		img = CreateErrorImage(400, 300, ref.Path, err.Error())
	}
	m.full.Add(ref.Path, img)
	debugLog("Loaded %s (cache: %d items)", ref.Path, m.full.Len())
	return img
}

// Thumbnail returns the thumbnail at idx, or nil while it is being decoded
func (m *MediaStore) Thumbnail(idx int) *ebiten.Image {
	if idx < 0 || idx >= len(m.refs) {
		return nil
	}
	if img, ok := m.thumbs.Get(m.refs[idx].Path); ok {
		return img
	}
	m.preload.Enqueue(loadRequest{Index: idx, Thumb: true})
	return nil
}

// Preload schedules the count images on each side of idx, wrapping around
func (m *MediaStore) Preload(idx, count int) {
	n := len(m.refs)
	for d := 1; d <= count && d < n; d++ {
		for _, i := range []int{(idx + d) % n, ((idx-d)%n + n) % n} {
			if !m.full.Contains(m.refs[i].Path) {
				m.preload.Enqueue(loadRequest{Index: i})
			}
		}
	}
}

// Close stops background loading
func (m *MediaStore) Close() {
	m.preload.Stop()
}

func (m *MediaStore) loadThumbnail(idx int) {
	ref := m.refs[idx]
	if m.thumbs.Contains(ref.Path) {
		return
	}
	src, err := decodeMedia(ref)
	if err != nil {
		log.Printf("Warning: No thumbnail for %s: %v", ref.Path, err)
		m.thumbs.Add(ref.Path, CreateErrorImage(m.thumbSize, m.thumbSize, ref.Path, "unreadable"))
		return
	}
	m.thumbs.Add(ref.Path, ebiten.NewImageFromImage(scaleToFit(src, m.thumbSize)))
}

// scaleToFit downsizes img so that neither side exceeds size. Smaller images are returned as is.
func scaleToFit(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Image loading functions

func decodeBytes(data []byte, path string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func decodeMedia(ref MediaRef) (image.Image, error) {
	if ref.ArchivePath == "" {
		f, err := os.Open(ref.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", ref.Path, err)
		}
		return img, nil
	}

	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(ref.ArchivePath)); ext {
	case ".zip":
		data, err = readZipEntry(ref.ArchivePath, ref.EntryPath)
	case ".rar":
		data, err = readRarEntry(ref.ArchivePath, ref.EntryPath)
	case ".7z":
		data, err = read7zEntry(ref.ArchivePath, ref.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	return decodeBytes(data, ref.EntryPath)
}

func loadImage(ref MediaRef) (*ebiten.Image, error) {
	img, err := decodeMedia(ref)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// File collection functions

func archiveEntry(archivePath, name string) MediaRef {
	return MediaRef{
		Path:        archivePath + ":" + name,
		ArchivePath: archivePath,
		EntryPath:   name,
	}
}

func extractImagesFromZip(archivePath string) ([]MediaRef, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var refs []MediaRef
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			refs = append(refs, archiveEntry(archivePath, f.Name))
		}
	}
	return refs, nil
}

func extractImagesFromRar(archivePath string) ([]MediaRef, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var refs []MediaRef
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			refs = append(refs, archiveEntry(archivePath, header.Name))
		}
	}
	return refs, nil
}

func extractImagesFrom7z(archivePath string) ([]MediaRef, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var refs []MediaRef
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			refs = append(refs, archiveEntry(archivePath, f.Name))
		}
	}
	return refs, nil
}

func processArchive(archivePath string) ([]MediaRef, error) {
	var refs []MediaRef
	var err error

	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		refs, err = extractImagesFromZip(archivePath)
	case ".rar":
		refs, err = extractImagesFromRar(archivePath)
	case ".7z":
		refs, err = extractImagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	return refs, nil
}

// sortMedia sorts refs with the given sort strategy without modifying the input
func sortMedia(refs []MediaRef, sortMethod int) []MediaRef {
	return GetSortStrategy(sortMethod).Sort(refs)
}

// collectMedia expands files, directories and archives into an ordered media list
func collectMedia(args []string, sortMethod int) ([]MediaRef, error) {
	var list []MediaRef
	addArchive := func(path string) []MediaRef {
		refs, err := processArchive(path)
		if err != nil {
			log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
			return nil
		}
		return sortMedia(refs, sortMethod)
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isSupportedExt(p) {
				list = append(list, MediaRef{Path: p})
			} else if isArchiveExt(p) {
				list = append(list, addArchive(p)...)
			}
			continue
		}

		var dirMedia []MediaRef
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirMedia = append(dirMedia, MediaRef{Path: path})
			} else if isArchiveExt(path) {
				dirMedia = append(dirMedia, addArchive(path)...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, sortMedia(dirMedia, sortMethod)...)
	}

	return list, nil
}
