package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/app/repositories"
	"github.com/labspace/praktikum/internal/pkg/apperrors"
	"github.com/labspace/praktikum/internal/pkg/helpers"
)

// In-memory fakes backing the service tests. Each fake implements the
// store interface its service consumes, keyed by id.

type fakeClasses struct {
	classes map[int64]*repositories.ClassDetails
	nextID  int64

	// cascadeFiles is returned by DeleteClassCascade so tests can verify
	// post-delete disk cleanup.
	cascadeFiles []string
}

func newFakeClasses() *fakeClasses {
	return &fakeClasses{classes: map[int64]*repositories.ClassDetails{}, nextID: 1}
}

func (f *fakeClasses) addClass(id int64, title string) {
	f.classes[id] = &repositories.ClassDetails{
		Class: models.Class{ID: id, Title: title, CreatedBy: 1},
	}
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *fakeClasses) CreateClass(_ context.Context, class *models.Class) (int64, error) {
	id := f.nextID
	f.nextID++
	class.ID = id
	f.classes[id] = &repositories.ClassDetails{Class: *class}
	return id, nil
}

func (f *fakeClasses) GetClassByID(_ context.Context, id int64) (*repositories.ClassDetails, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

func (f *fakeClasses) ClassExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.classes[id]
	return ok, nil
}

func (f *fakeClasses) GetAllClasses(_ context.Context, page, size int) ([]*repositories.ClassDetails, dto.PaginationInfo, error) {
	items := make([]*repositories.ClassDetails, 0, len(f.classes))
	for _, c := range f.classes {
		items = append(items, c)
	}
	return items, helpers.NewPaginationInfo(int64(len(items)), page, size), nil
}

func (f *fakeClasses) UpdateClass(_ context.Context, class *models.Class) error {
	existing, ok := f.classes[class.ID]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	existing.Title = class.Title
	existing.Description = class.Description
	existing.ImageURL = class.ImageURL
	return nil
}

func (f *fakeClasses) DeleteClassCascade(_ context.Context, classID int64) ([]string, error) {
	if _, ok := f.classes[classID]; !ok {
		return nil, apperrors.ErrClassNotFound
	}
	delete(f.classes, classID)
	return f.cascadeFiles, nil
}

type fakeEnrollments struct {
	enrolled map[[2]int64]bool
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{enrolled: map[[2]int64]bool{}}
}

func (f *fakeEnrollments) Enroll(_ context.Context, classID, userID int64) error {
	key := [2]int64{classID, userID}
	if f.enrolled[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	f.enrolled[key] = true
	return nil
}

func (f *fakeEnrollments) Unenroll(_ context.Context, classID, userID int64) error {
	delete(f.enrolled, [2]int64{classID, userID})
	return nil
}

func (f *fakeEnrollments) IsEnrolled(_ context.Context, classID, userID int64) (bool, error) {
	return f.enrolled[[2]int64{classID, userID}], nil
}

func (f *fakeEnrollments) ListStudents(_ context.Context, classID int64) ([]*repositories.EnrolledStudent, error) {
	var students []*repositories.EnrolledStudent
	for key := range f.enrolled {
		if key[0] == classID {
			students = append(students, &repositories.EnrolledStudent{UserID: key[1]})
		}
	}
	return students, nil
}

type fakeAssignments struct {
	assignments map[int64]*repositories.AssignmentDetails
	nextID      int64
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{assignments: map[int64]*repositories.AssignmentDetails{}, nextID: 1}
}

func (f *fakeAssignments) addAssignment(id, classID int64, deadline time.Time) {
	f.assignments[id] = &repositories.AssignmentDetails{
		Assignment: models.Assignment{ID: id, ClassID: classID, Title: "hw", Deadline: deadline},
	}
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *fakeAssignments) CreateAssignment(_ context.Context, assignment *models.Assignment) (int64, error) {
	id := f.nextID
	f.nextID++
	assignment.ID = id
	f.assignments[id] = &repositories.AssignmentDetails{Assignment: *assignment}
	return id, nil
}

func (f *fakeAssignments) GetAssignmentByID(_ context.Context, id int64) (*repositories.AssignmentDetails, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (f *fakeAssignments) ListAssignmentsByClass(_ context.Context, classID int64) ([]*repositories.AssignmentDetails, error) {
	var items []*repositories.AssignmentDetails
	for _, a := range f.assignments {
		if a.ClassID == classID {
			items = append(items, a)
		}
	}
	return items, nil
}

func (f *fakeAssignments) UpdateAssignment(_ context.Context, assignment *models.Assignment) error {
	existing, ok := f.assignments[assignment.ID]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	existing.Title = assignment.Title
	existing.Description = assignment.Description
	existing.Deadline = assignment.Deadline
	return nil
}

func (f *fakeAssignments) DeleteAssignmentCascade(_ context.Context, assignmentID int64) error {
	if _, ok := f.assignments[assignmentID]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	delete(f.assignments, assignmentID)
	return nil
}

type fakeSubmissions struct {
	submissions map[int64]*repositories.SubmissionDetails
	nextID      int64
}

func newFakeSubmissions() *fakeSubmissions {
	return &fakeSubmissions{submissions: map[int64]*repositories.SubmissionDetails{}, nextID: 1}
}

func (f *fakeSubmissions) Upsert(_ context.Context, sub *models.Submission) (int64, error) {
	for _, existing := range f.submissions {
		if existing.Submission.AssignmentID == sub.AssignmentID && existing.Submission.UserID == sub.UserID {
			existing.Content = sub.Content
			existing.FileURLs = sub.FileURLs
			existing.UpdatedAt = time.Now()
			existing.Grade = nil
			existing.Feedback = nil
			existing.GradedAt = nil
			existing.GradedBy = nil
			return existing.Submission.ID, nil
		}
	}
	id := f.nextID
	f.nextID++
	sub.ID = id
	sub.SubmittedAt = time.Now()
	f.submissions[id] = &repositories.SubmissionDetails{Submission: *sub}
	return id, nil
}

func (f *fakeSubmissions) GetByID(_ context.Context, id int64) (*repositories.SubmissionDetails, error) {
	sub, ok := f.submissions[id]
	if !ok {
		return nil, apperrors.ErrSubmissionNotFound
	}
	return sub, nil
}

func (f *fakeSubmissions) GetByAssignmentAndUser(_ context.Context, assignmentID, userID int64) (*repositories.SubmissionDetails, error) {
	for _, sub := range f.submissions {
		if sub.Submission.AssignmentID == assignmentID && sub.Submission.UserID == userID {
			return sub, nil
		}
	}
	return nil, apperrors.ErrSubmissionNotFound
}

func (f *fakeSubmissions) ListByAssignment(_ context.Context, assignmentID int64) ([]*repositories.SubmissionDetails, error) {
	var items []*repositories.SubmissionDetails
	for _, sub := range f.submissions {
		if sub.Submission.AssignmentID == assignmentID {
			items = append(items, sub)
		}
	}
	return items, nil
}

func (f *fakeSubmissions) SetGrade(_ context.Context, submissionID int64, grade float64, feedback string, gradedBy int64, gradedAt time.Time) error {
	sub, ok := f.submissions[submissionID]
	if !ok {
		return apperrors.ErrSubmissionNotFound
	}
	sub.Grade = &grade
	sub.Feedback = &feedback
	sub.GradedBy = &gradedBy
	sub.GradedAt = &gradedAt
	return nil
}

type fakeFolders struct {
	folders map[int64]*repositories.FolderDetails
	nextID  int64
}

func newFakeFolders() *fakeFolders {
	return &fakeFolders{folders: map[int64]*repositories.FolderDetails{}, nextID: 1}
}

func (f *fakeFolders) addFolder(id, classID int64, title string) {
	f.folders[id] = &repositories.FolderDetails{
		ModuleFolder: models.ModuleFolder{ID: id, ClassID: classID, Title: title},
	}
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *fakeFolders) CreateFolder(_ context.Context, folder *models.ModuleFolder) (int64, error) {
	id := f.nextID
	f.nextID++
	folder.ID = id
	f.folders[id] = &repositories.FolderDetails{ModuleFolder: *folder}
	return id, nil
}

func (f *fakeFolders) GetFolderByID(_ context.Context, id int64) (*repositories.FolderDetails, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, apperrors.ErrFolderNotFound
	}
	return folder, nil
}

func (f *fakeFolders) ListFoldersByClass(_ context.Context, classID int64) ([]*repositories.FolderDetails, error) {
	var items []*repositories.FolderDetails
	for _, folder := range f.folders {
		if folder.ClassID == classID {
			items = append(items, folder)
		}
	}
	return items, nil
}

func (f *fakeFolders) UpdateFolder(_ context.Context, folder *models.ModuleFolder) error {
	existing, ok := f.folders[folder.ID]
	if !ok {
		return apperrors.ErrFolderNotFound
	}
	existing.Title = folder.Title
	existing.OrderIndex = folder.OrderIndex
	return nil
}

func (f *fakeFolders) DeleteFolderCascade(_ context.Context, folderID int64) ([]string, error) {
	if _, ok := f.folders[folderID]; !ok {
		return nil, apperrors.ErrFolderNotFound
	}
	delete(f.folders, folderID)
	return nil, nil
}

type fakeModules struct {
	modules map[int64]*repositories.ModuleDetails
	files   map[int64][]*models.ModuleFile
	nextID  int64
}

func newFakeModules() *fakeModules {
	return &fakeModules{
		modules: map[int64]*repositories.ModuleDetails{},
		files:   map[int64][]*models.ModuleFile{},
		nextID:  1,
	}
}

func (f *fakeModules) addModule(id, classID int64, title string) {
	f.modules[id] = &repositories.ModuleDetails{
		Module: models.Module{ID: id, ClassID: classID, Title: title},
	}
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

func (f *fakeModules) CreateModule(_ context.Context, module *models.Module) (int64, error) {
	id := f.nextID
	f.nextID++
	module.ID = id
	f.modules[id] = &repositories.ModuleDetails{Module: *module}
	return id, nil
}

func (f *fakeModules) GetModuleByID(_ context.Context, id int64) (*repositories.ModuleDetails, error) {
	module, ok := f.modules[id]
	if !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	return module, nil
}

func (f *fakeModules) ListModulesByClass(_ context.Context, classID int64) ([]*repositories.ModuleDetails, error) {
	var items []*repositories.ModuleDetails
	for _, module := range f.modules {
		if module.ClassID == classID {
			items = append(items, module)
		}
	}
	return items, nil
}

func (f *fakeModules) UpdateModule(_ context.Context, module *models.Module) error {
	existing, ok := f.modules[module.ID]
	if !ok {
		return apperrors.ErrModuleNotFound
	}
	existing.FolderID = module.FolderID
	existing.Title = module.Title
	existing.Content = module.Content
	existing.OrderIndex = module.OrderIndex
	return nil
}

func (f *fakeModules) DeleteModuleCascade(_ context.Context, moduleID int64) ([]string, error) {
	if _, ok := f.modules[moduleID]; !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	var paths []string
	for _, file := range f.files[moduleID] {
		paths = append(paths, file.FilePath)
	}
	delete(f.modules, moduleID)
	delete(f.files, moduleID)
	return paths, nil
}

func (f *fakeModules) CountFiles(_ context.Context, moduleID int64) (int, error) {
	return len(f.files[moduleID]), nil
}

func (f *fakeModules) AddFile(_ context.Context, file *models.ModuleFile) (int64, error) {
	id := f.nextID
	f.nextID++
	file.ID = id
	f.files[file.ModuleID] = append(f.files[file.ModuleID], file)
	return id, nil
}

func (f *fakeModules) GetFile(_ context.Context, moduleID, fileID int64) (*models.ModuleFile, error) {
	for _, file := range f.files[moduleID] {
		if file.ID == fileID {
			return file, nil
		}
	}
	return nil, apperrors.ErrFileNotFound
}

func (f *fakeModules) DeleteFile(_ context.Context, moduleID, fileID int64) error {
	files := f.files[moduleID]
	for i, file := range files {
		if file.ID == fileID {
			f.files[moduleID] = append(files[:i], files[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrFileNotFound
}

type fakeNews struct {
	news   map[int64]*repositories.NewsDetails
	nextID int64
}

func newFakeNews() *fakeNews {
	return &fakeNews{news: map[int64]*repositories.NewsDetails{}, nextID: 1}
}

func (f *fakeNews) CreateNews(_ context.Context, news *models.News) (int64, error) {
	id := f.nextID
	f.nextID++
	news.ID = id
	f.news[id] = &repositories.NewsDetails{News: *news}
	return id, nil
}

func (f *fakeNews) GetNewsByID(_ context.Context, id int64) (*repositories.NewsDetails, error) {
	news, ok := f.news[id]
	if !ok {
		return nil, apperrors.ErrNewsNotFound
	}
	return news, nil
}

func (f *fakeNews) GetAllNews(_ context.Context, page, size int) ([]*repositories.NewsDetails, dto.PaginationInfo, error) {
	items := make([]*repositories.NewsDetails, 0, len(f.news))
	for _, n := range f.news {
		items = append(items, n)
	}
	return items, helpers.NewPaginationInfo(int64(len(items)), page, size), nil
}

func (f *fakeNews) UpdateNews(_ context.Context, news *models.News) error {
	existing, ok := f.news[news.ID]
	if !ok {
		return apperrors.ErrNewsNotFound
	}
	existing.Title = news.Title
	existing.Content = news.Content
	existing.ImageURL = news.ImageURL
	existing.Link = news.Link
	return nil
}

func (f *fakeNews) DeleteNews(_ context.Context, id int64) error {
	if _, ok := f.news[id]; !ok {
		return apperrors.ErrNewsNotFound
	}
	delete(f.news, id)
	return nil
}

type fakeUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUsers) addUser(user *models.User) {
	f.users[user.ID] = user
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	user.ID = id
	f.users[id] = user
	return id, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeTokens struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*repositories.RefreshToken{}}
}

func (f *fakeTokens) StoreRefreshToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &repositories.RefreshToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeTokens) GetRefreshToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return stored, nil
}

func (f *fakeTokens) RevokeRefreshToken(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
	nextID  int
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	f.nextID++
	path := "fake-" + fileHeader.Filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, _ string) (string, error) {
	return f.SaveFile(fileHeader)
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}
