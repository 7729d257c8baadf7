package extractor

// extractionPrompt instructs the model to emit per-term course JSON.
// Transfer-credit sections are excluded at the source: only courses earned
// at the issuing institution may appear.
const extractionPrompt = `
# Transcript Data Extraction Prompt

## **Objective**
Extract the following information from the provided PDF transcript file.

## **Instructions**

### **Step 1: Check for a "Transcript Explanation" Page**
- If the document contains a "Transcript Explanation" page, refer to it before extracting any data.
- Use this page to correctly interpret the structure, grading system, and any special formatting rules in the transcript.

### **Step 2: Exclude transfer credit**
- Skip sections titled "TRANSFER CREDIT ACCEPTED BY THE INSTITUTION", "Transfer Coursework", "Transfer Credit", "Transferred Courses", or any similar wording.
- These are NOT part of the student's earned credits at this institution and must not be included.
- Only extract courses that were taken and completed at the issuing institution.

### **Step 3: Extract the Required Information**
First, extract the **Institution Name** from the transcript header or title section.
For each term, extract the following details:

- **Term:** Identify the academic term (Fall, Summer, Spring).
- **Year:** Extract the 4-digit academic year.
- **Courses:** A list of courses within that term, with the following attributes:
  - **Course Code:** Extract exactly as shown under "COURSE."
  - **Division:** Determine the division based on the first digit(s) of the "Course Code":
    - **0xxx - 4xxx** → **UNDG (Undergraduate)**
    - **5xxx - 6xxx** → **GRAD (Graduate)**
  - **Title:** Extract exactly as shown under "COURSE TITLE."
  - **Short Title:** Provide a shortened version of the course title (<= 40 characters), or the full title if already short enough.
  - **Credits:** Extract from the "CRED" or "CREDIT" column if present; if missing, calculate as POINTS divided by the numeric grade value.
  - **Grade:** Extract what is listed under "GRADE."
  - **Points:** Extract what is listed under "GRADE POINTS" or "POINTS" if available.

### **Step 4: Output Format**
Return the extracted data as a JSON array inside a fenced code block:

` + "```json" + `
[
  {
    "institution": "Langston University",
    "term": "Fall",
    "year": "2023",
    "courses": [
      {
        "course_code": "CS101",
        "division": "UNDG",
        "title": "Introduction to Computer Science",
        "short_title": "Intro to Computer Science",
        "credits": 3,
        "grade": "A",
        "points": 12
      }
    ]
  }
]
` + "```" + `

## **Additional Considerations**
- Grade values: A=4.0, B=3.0, C=2.0, D=1.0, F=0.0; plus/minus modifiers adjust by 0.3 (e.g., A- = 3.7, B+ = 3.3).
- Ensure each course is associated with its respective term and year.
- Always include the "points" field; it is needed for credit back-calculation.
- If any required value is missing, use an empty string ("") rather than omitting the field.
- The institution name belongs at the term level.
`
