package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/api"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/report"
	"github.com/bigredeye/gradebook/internal/scorer"
)

type apiService struct {
	webService
}

func setupApiService(server *server, r *gin.Engine) {
	s := apiService{webService{server, server.config, server.book, server.logger}}

	g := r.Group("/api")
	g.GET("/standings", s.standings)
	g.GET("/ranking", s.ranking)
	g.GET("/students/:id", s.student)
	g.DELETE("/students/:id", s.removeStudent)
	g.POST("/students/:id/rename", s.renameStudent)
	g.GET("/courses/:code/average", s.courseAverage)
	g.GET("/report", s.report)
	g.POST("/enroll", s.enroll)
	g.POST("/unenroll", s.unenroll)
	g.POST("/grade", s.grade)
}

func fail(c *gin.Context, code int, err error) {
	c.JSON(code, &api.Status{Ok: false, Error: err.Error()})
}

func (s apiService) threshold(c *gin.Context) (float64, error) {
	req := api.StandingsRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		return 0, errors.Wrap(err, "Invalid threshold")
	}
	if req.Threshold == nil {
		return s.config.Grading.PassThreshold, nil
	}
	return *req.Threshold, nil
}

func (s apiService) standings(c *gin.Context) {
	threshold, err := s.threshold(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	value, err := s.server.cache.fetch(fmt.Sprintf("standings:%g", threshold), s.book.Revision(), func() (interface{}, error) {
		return s.book.Standings(threshold), nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, &api.StandingsResponse{
		Status:    api.Status{Ok: true},
		Standings: value.(*scorer.Standings),
	})
}

func (s apiService) ranking(c *gin.Context) {
	req := api.RankingRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.Wrap(err, "Invalid limit"))
		return
	}
	limit := s.config.Grading.RankLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	c.JSON(http.StatusOK, &api.RankingResponse{
		Status:  api.Status{Ok: true},
		Ranking: s.book.RankStudentsByAverage(limit),
	})
}

func (s apiService) student(c *gin.Context) {
	threshold, err := s.threshold(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	scores, found := s.book.StudentScores(id, threshold)
	if !found {
		fail(c, http.StatusNotFound, errors.Wrapf(models.ErrNotFound, "student %s", id))
		return
	}

	c.JSON(http.StatusOK, &api.StudentResponse{
		Status: api.Status{Ok: true},
		Scores: scores,
	})
}

// removeStudent also drops every enrollment of the student.
func (s apiService) removeStudent(c *gin.Context) {
	id := c.Param("id")
	if !s.book.RemoveStudent(id) {
		fail(c, http.StatusNotFound, errors.Wrapf(models.ErrNotFound, "student %s", id))
		return
	}

	s.requestLog(c).Info("Removed student", lf.StudentID(id))
	c.JSON(http.StatusOK, &api.StudentStatusResponse{Status: api.Status{Ok: true}})
}

func (s apiService) renameStudent(c *gin.Context) {
	req := api.RenameRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("id")
	if !s.book.RenameStudent(id, req.Name) {
		fail(c, http.StatusNotFound, errors.Wrapf(models.ErrNotFound, "student %s", id))
		return
	}

	s.requestLog(c).Info("Renamed student", lf.StudentID(id), zap.String("name", req.Name))
	c.JSON(http.StatusOK, &api.StudentStatusResponse{Status: api.Status{Ok: true}})
}

func (s apiService) courseAverage(c *gin.Context) {
	code := c.Param("code")
	course, found := s.book.FindCourse(code)
	if !found {
		fail(c, http.StatusNotFound, errors.Wrapf(models.ErrNotFound, "course %s", code))
		return
	}

	c.JSON(http.StatusOK, &api.CourseAverageResponse{
		Status:  api.Status{Ok: true},
		Code:    course.Code,
		Name:    course.Name,
		Average: s.book.CourseAverage(course.Code),
	})
}

func (s apiService) report(c *gin.Context) {
	threshold, err := s.threshold(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	value, err := s.server.cache.fetch(fmt.Sprintf("report:%g", threshold), s.book.Revision(), func() (interface{}, error) {
		return report.RenderString(s.book.Standings(threshold)), nil
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}

	c.String(http.StatusOK, value.(string))
}

// missing tells which side of a rejected enrollment does not exist.
func (s apiService) missing(studentID, courseCode string) error {
	if _, found := s.book.FindStudent(studentID); !found {
		return errors.Wrapf(models.ErrNotFound, "student %s", studentID)
	}
	if _, found := s.book.FindCourse(courseCode); !found {
		return errors.Wrapf(models.ErrNotFound, "course %s", courseCode)
	}
	return nil
}

func (s apiService) enroll(c *gin.Context) {
	log := s.requestLog(c)

	req := api.EnrollRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if !s.book.Enroll(req.StudentID, req.CourseCode) {
		if err := s.missing(req.StudentID, req.CourseCode); err != nil {
			fail(c, http.StatusNotFound, err)
			return
		}
		log.Info("Duplicate enrollment", lf.StudentID(req.StudentID), lf.CourseCode(req.CourseCode))
		fail(c, http.StatusConflict, errors.Wrapf(models.ErrDuplicate, "enrollment %s/%s", req.StudentID, req.CourseCode))
		return
	}

	log.Info("Enrolled student", lf.StudentID(req.StudentID), lf.CourseCode(req.CourseCode))
	c.JSON(http.StatusOK, &api.EnrollResponse{Status: api.Status{Ok: true}})
}

func (s apiService) unenroll(c *gin.Context) {
	req := api.EnrollRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	if !s.book.Unenroll(req.StudentID, req.CourseCode) {
		fail(c, http.StatusNotFound, errors.Wrapf(models.ErrNotFound, "enrollment %s/%s", req.StudentID, req.CourseCode))
		return
	}

	s.requestLog(c).Info("Unenrolled student", lf.StudentID(req.StudentID), lf.CourseCode(req.CourseCode))
	c.JSON(http.StatusOK, &api.EnrollResponse{Status: api.Status{Ok: true}})
}

func (s apiService) grade(c *gin.Context) {
	log := s.requestLog(c)

	req := api.GradeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	add := s.book.AddGrade
	if req.Enroll {
		add = s.book.EnrollAndGrade
	}
	ok, err := add(req.StudentID, req.CourseCode, *req.Grade)
	if err != nil {
		log.Warn("Failed to add grade", zap.Error(err))
		if errors.Is(err, models.ErrInvalidGrade) {
			fail(c, http.StatusBadRequest, err)
		} else {
			fail(c, http.StatusInternalServerError, err)
		}
		return
	}
	if !ok {
		err := errors.Wrapf(models.ErrNotFound, "enrollment %s/%s", req.StudentID, req.CourseCode)
		if missing := s.missing(req.StudentID, req.CourseCode); missing != nil {
			err = missing
		}
		fail(c, http.StatusNotFound, err)
		return
	}

	grades, _ := s.book.GradesOf(req.StudentID, req.CourseCode)
	c.JSON(http.StatusOK, &api.GradeResponse{
		Status: api.Status{Ok: true},
		Grades: grades,
	})
}
